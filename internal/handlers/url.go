package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/audit"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/qrcode"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

var customCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// reservedCodes are path segments already taken by other routes.
var reservedCodes = map[string]struct{}{
	"shorten": {},
	"recent":  {},
	"posts":   {},
	"health":  {},
	"metrics": {},
	"docs":    {},
	"openapi": {},
	"schemas": {},
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	allocator         *shortener.Allocator
	resolver          *shortener.Resolver
	qr                qrcode.Renderer
	baseURL           string
	publishURLCreated messaging.Publish[audit.LinkCreatedEvent]
	logger            *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	allocator *shortener.Allocator,
	resolver *shortener.Resolver,
	qr qrcode.Renderer,
	baseURL string,
	publishURLCreated messaging.Publish[audit.LinkCreatedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		allocator:         allocator,
		resolver:          resolver,
		qr:                qr,
		baseURL:           strings.TrimRight(baseURL, "/"),
		publishURLCreated: publishURLCreated,
		logger:            logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	target := req.Body.URL
	if strings.TrimSpace(target) == "" {
		return nil, huma.Error400BadRequest("url must not be empty")
	}

	alias := strings.TrimSpace(req.Body.CustomCode)
	if err := validateCustomCode(alias); err != nil {
		return nil, err
	}

	link, err := h.allocator.Allocate(ctx, target, alias)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrAliasTaken):
			return nil, huma.Error409Conflict(fmt.Sprintf("custom code %q is already in use", alias))
		case errors.Is(err, shortener.ErrAllocationExhausted):
			return nil, huma.Error500InternalServerError("could not allocate a short code")
		default:
			return nil, huma.Error500InternalServerError("failed to save url")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &audit.LinkCreatedEvent{
		Code:      string(link.Code),
		Target:    link.Target,
		Custom:    alias != "",
		CreatedAt: link.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishURLCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	fullShortURL := h.shortURL(link.Code)

	resp := &CreateShortURLResponse{}
	resp.Headers.Location = fullShortURL
	resp.Body.Code = string(link.Code)
	resp.Body.ShortURL = fullShortURL
	resp.Body.OriginalURL = link.Target
	resp.Body.CreatedAt = link.CreatedAt

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *CodeRequest) (*RedirectResponse, error) {
	target, err := h.resolve(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = target

	return resp, nil
}

// QRCode renders the short URL for an existing code as a PNG.
func (h *URLHandler) QRCode(ctx context.Context, req *CodeRequest) (*QRCodeResponse, error) {
	if _, err := h.resolve(ctx, req.Code); err != nil {
		return nil, err
	}

	png, err := h.qr.PNG(h.shortURL(shortener.Code(req.Code)))
	if err != nil {
		h.logger.Error("failed to render qr code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to render qr code")
	}

	return &QRCodeResponse{ContentType: "image/png", Body: png}, nil
}

func (h *URLHandler) RecentLinks(ctx context.Context, req *RecentRequest) (*RecentResponse, error) {
	links, err := h.resolver.Recent(ctx, req.Limit)
	if err != nil {
		h.logger.Error("failed to list recent links", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list recent links")
	}

	resp := &RecentResponse{}
	resp.Body.Links = make([]LinkBody, 0, len(links))

	for _, link := range links {
		resp.Body.Links = append(resp.Body.Links, LinkBody{
			Code:      string(link.Code),
			Target:    link.Target,
			CreatedAt: link.CreatedAt,
		})
	}

	return resp, nil
}

func (h *URLHandler) resolve(ctx context.Context, code string) (string, error) {
	target, err := h.resolver.Resolve(ctx, shortener.Code(code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return "", huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to resolve code", zap.String("code", code), zap.Error(err))

		return "", huma.Error500InternalServerError("failed to get url")
	}

	return target, nil
}

func (h *URLHandler) shortURL(code shortener.Code) string {
	return fmt.Sprintf("%s/%s", h.baseURL, code)
}

func validateCustomCode(alias string) error {
	if alias == "" {
		return nil
	}

	if !customCodePattern.MatchString(alias) {
		return huma.Error400BadRequest("custom code must be 1-64 letters, digits, '-' or '_'")
	}

	if _, ok := reservedCodes[strings.ToLower(alias)]; ok {
		return huma.Error400BadRequest(fmt.Sprintf("custom code %q is reserved", alias))
	}

	return nil
}
