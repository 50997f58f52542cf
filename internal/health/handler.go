package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	storage Checker
	redis   Checker
}

// NewHandler creates a new health handler. redis may be nil when the
// service runs without Redis.
func NewHandler(storage, redis Checker) *Handler {
	return &Handler{storage: storage, redis: redis}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status  string `json:"status"`
		Storage string `json:"storage"`
		Redis   string `json:"redis,omitempty"`
	}
}

// Check performs a health check of the application and its dependencies.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	resp.Body.Storage = check(ctx, h.storage)
	if resp.Body.Storage != statusHealthy {
		resp.Body.Status = "degraded"
	}

	if h.redis != nil {
		resp.Body.Redis = check(ctx, h.redis)
		if resp.Body.Redis != statusHealthy {
			resp.Body.Status = "degraded"
		}
	}

	return resp, nil
}

func check(ctx context.Context, c Checker) string {
	if err := c.Ping(ctx); err != nil {
		return statusUnhealthy
	}

	return statusHealthy
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
