package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

func serveWithMeta(t *testing.T, req *http.Request) handlers.RequestMeta {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	metaChan := make(chan handlers.RequestMeta, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		metaChan <- handlers.RequestMetaFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	return <-metaChan
}

func TestRequestMeta(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		wantIP   string
		wantUser string
	}{
		{
			name:     "extracts user-agent",
			headers:  map[string]string{"User-Agent": "TestAgent/1.0"},
			remote:   "203.0.113.9:4321",
			wantIP:   "203.0.113.9",
			wantUser: "TestAgent/1.0",
		},
		{
			name:    "uses single X-Forwarded-For address",
			headers: map[string]string{"X-Forwarded-For": "192.168.1.1"},
			remote:  "203.0.113.9:4321",
			wantIP:  "192.168.1.1",
		},
		{
			name:    "uses first of several X-Forwarded-For addresses",
			headers: map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1, 172.16.0.1"},
			remote:  "203.0.113.9:4321",
			wantIP:  "192.168.1.1",
		},
		{
			name:    "uses X-Real-IP when X-Forwarded-For is absent",
			headers: map[string]string{"X-Real-IP": "10.0.0.1"},
			remote:  "203.0.113.9:4321",
			wantIP:  "10.0.0.1",
		},
		{
			name:   "falls back to the remote address",
			remote: "203.0.113.9:4321",
			wantIP: "203.0.113.9",
		},
		{
			name:   "keeps a remote address without port",
			remote: "203.0.113.9",
			wantIP: "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remote

			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			meta := serveWithMeta(t, req)

			assert.Equal(t, tt.wantIP, meta.ClientIP)
			assert.Equal(t, tt.wantUser, meta.UserAgent)
		})
	}
}
