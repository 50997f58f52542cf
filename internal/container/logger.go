package container

import (
	"fmt"
	"os"

	"github.com/samber/do"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the service logger. Console output is always on; when
// LogFile is set a rotated JSON file core is teed in.
func NewLogger(opts *Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", errInvalidOptions, err)
	}

	atomicLevel := zap.NewAtomicLevelAt(level)

	var encoder zapcore.Encoder
	if opts.LogFormat == "json" {
		encoder = zapcore.NewJSONEncoder(productionEncoderConfig())
	} else {
		developmentCfg := zap.NewDevelopmentEncoderConfig()
		developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(developmentCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), atomicLevel)

	if opts.LogFile != "" {
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})

		core = zapcore.NewTee(
			core,
			zapcore.NewCore(zapcore.NewJSONEncoder(productionEncoderConfig()), file, atomicLevel),
		)
	}

	return zap.New(core, zap.AddCaller()), nil
}

func productionEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg
}

// LoggerPackage provides *zap.Logger.
func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		return NewLogger(do.MustInvoke[*Options](i))
	})
}
