package container_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/container"
	"github.com/serroba/shortlink/internal/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func validOptions() *container.Options {
	return &container.Options{
		Port:        8888,
		CodeLength:  6,
		MaxAttempts: 20,
		Storage:     container.StorageMemory,
		SQLitePath:  "shortlink.db",
		RedisAddr:   "localhost:6379",
		CacheTTL:    "1h",
		LogFormat:   "console",
		LogLevel:    "info",
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(o *container.Options)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(_ *container.Options) {}},
		{name: "unknown storage", modify: func(o *container.Options) { o.Storage = "mongo" }, wantErr: "unknown storage"},
		{name: "code too short", modify: func(o *container.Options) { o.CodeLength = 3 }, wantErr: "code length"},
		{name: "code too long", modify: func(o *container.Options) { o.CodeLength = 33 }, wantErr: "code length"},
		{name: "no attempts", modify: func(o *container.Options) { o.MaxAttempts = 0 }, wantErr: "max attempts"},
		{name: "bad cache ttl", modify: func(o *container.Options) { o.CacheTTL = "soon" }, wantErr: "cache ttl"},
		{name: "negative cache ttl", modify: func(o *container.Options) { o.CacheTTL = "-1m" }, wantErr: "cache ttl"},
		{name: "bad log level", modify: func(o *container.Options) { o.LogLevel = "loud" }, wantErr: "log level"},
		{name: "bad log format", modify: func(o *container.Options) { o.LogFormat = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.modify(opts)

			err := opts.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptions_PublicBaseURL(t *testing.T) {
	opts := validOptions()
	assert.Equal(t, "http://localhost:8888", opts.PublicBaseURL())

	opts.BaseURL = "https://sho.rt/"
	assert.Equal(t, "https://sho.rt", opts.PublicBaseURL())
}

func TestOptions_UsesRedis(t *testing.T) {
	tests := []struct {
		storage  string
		cacheTTL string
		events   bool
		want     bool
	}{
		{storage: container.StorageMemory, cacheTTL: "1h", want: false},
		{storage: container.StorageMemory, cacheTTL: "1h", events: true, want: true},
		{storage: container.StorageRedis, cacheTTL: "0", want: true},
		{storage: container.StorageSQLite, cacheTTL: "1h", want: true},
		{storage: container.StorageSQLite, cacheTTL: "0", want: false},
		{storage: container.StoragePostgres, cacheTTL: "0", want: false},
	}

	for _, tt := range tests {
		opts := validOptions()
		opts.Storage = tt.storage
		opts.CacheTTL = tt.cacheTTL
		opts.Events = tt.events

		assert.Equal(t, tt.want, opts.UsesRedis(), "%s cache=%s events=%v", tt.storage, tt.cacheTTL, tt.events)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("writes json to the log file", func(t *testing.T) {
		opts := validOptions()
		opts.LogFormat = "json"
		opts.LogFile = filepath.Join(t.TempDir(), "shortlink.log")

		logger, err := container.NewLogger(opts)
		require.NoError(t, err)

		logger.Info("hello")
		_ = logger.Sync()

		content, err := os.ReadFile(opts.LogFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"msg":"hello"`)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		opts := validOptions()
		opts.LogLevel = "loud"

		_, err := container.NewLogger(opts)

		assert.Error(t, err)
	})
}

func TestRepositoryPackage_Posts(t *testing.T) {
	tests := []struct {
		name     string
		storage  string
		wantWarn bool
	}{
		{name: "memory keeps posts in memory quietly", storage: container.StorageMemory},
		{name: "redis warns that posts are kept in memory", storage: container.StorageRedis, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			opts.Storage = tt.storage
			core, logs := observer.New(zap.InfoLevel)

			injector := do.New()
			do.ProvideValue(injector, opts)
			do.ProvideValue(injector, zap.New(core))
			container.RepositoryPackage(injector)

			repo, err := do.Invoke[posts.Repository](injector)

			require.NoError(t, err)
			assert.NotNil(t, repo)
			assert.Equal(t, tt.wantWarn, logs.FilterLevelExact(zap.WarnLevel).Len() == 1)
		})
	}
}

func newServerInjector(t *testing.T, opts *container.Options) *do.Injector {
	t.Helper()

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.MetricsPackage(injector)
	container.RedisPackage(injector)
	container.SQLitePackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)

	t.Cleanup(func() { _ = injector.Shutdown() })

	return injector
}

func serve(router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHTTPPackage(t *testing.T) {
	for _, storage := range []string{container.StorageMemory, container.StorageSQLite} {
		t.Run(storage, func(t *testing.T) {
			opts := validOptions()
			opts.Storage = storage
			opts.SQLitePath = filepath.Join(t.TempDir(), "shortlink.db")
			opts.CacheTTL = "0"

			injector := newServerInjector(t, opts)
			router := do.MustInvoke[*chi.Mux](injector)
			_ = do.MustInvoke[huma.API](injector)

			created := serve(router, http.MethodPost, "/shorten", `{"url":"https://example.com","customCode":"promo"}`)
			require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

			redirect := serve(router, http.MethodGet, "/promo", "")
			assert.Equal(t, http.StatusFound, redirect.Code)
			assert.Equal(t, "https://example.com", redirect.Header().Get("Location"))

			healthResp := serve(router, http.MethodGet, "/health", "")
			assert.Equal(t, http.StatusOK, healthResp.Code)
			assert.Contains(t, healthResp.Body.String(), `"status":"ok"`)

			metricsResp := serve(router, http.MethodGet, "/metrics", "")
			assert.Equal(t, http.StatusOK, metricsResp.Code)
			assert.Contains(t, metricsResp.Body.String(), `shortlink_allocations_total{kind="custom"} 1`)
		})
	}
}
