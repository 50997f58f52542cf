package audit

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// Sink records link creation events.
type Sink interface {
	LinkCreated(ctx context.Context, event *LinkCreatedEvent) error
}

// LogSink writes every event to the logger at info level.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) LinkCreated(_ context.Context, event *LinkCreatedEvent) error {
	s.logger.Info("link created",
		zap.String("code", event.Code),
		zap.String("target", event.Target),
		zap.Bool("custom", event.Custom),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("userAgent", event.UserAgent),
	)

	return nil
}

// NewConsumer returns a consumer that feeds link.created events into sink.
func NewConsumer(
	subscriber message.Subscriber,
	sink Sink,
	logger *zap.Logger,
) *messaging.Consumer[LinkCreatedEvent] {
	return messaging.NewConsumer[LinkCreatedEvent](subscriber, TopicLinkCreated, sink.LinkCreated, logger)
}
