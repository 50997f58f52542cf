package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/posts"
	"go.uber.org/zap"
)

// PostHandler serves the title and body posts.
type PostHandler struct {
	store  posts.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewPostHandler(store posts.Repository, logger *zap.Logger) *PostHandler {
	return &PostHandler{store: store, logger: logger, now: time.Now}
}

func (h *PostHandler) CreatePost(ctx context.Context, req *CreatePostRequest) (*PostResponse, error) {
	title := strings.TrimSpace(req.Body.Title)
	body := strings.TrimSpace(req.Body.Body)

	if title == "" || body == "" {
		return nil, huma.Error400BadRequest("title and body are required")
	}

	post := &posts.Post{Title: title, Body: body, CreatedAt: h.now().UTC()}
	if err := h.store.Create(ctx, post); err != nil {
		h.logger.Error("failed to create post", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save post")
	}

	return &PostResponse{Body: toPostBody(post)}, nil
}

func (h *PostHandler) ListPosts(ctx context.Context, _ *struct{}) (*PostListResponse, error) {
	all, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list posts")
	}

	resp := &PostListResponse{}
	resp.Body.Posts = make([]PostBody, 0, len(all))

	for _, post := range all {
		resp.Body.Posts = append(resp.Body.Posts, toPostBody(post))
	}

	return resp, nil
}

func (h *PostHandler) GetPost(ctx context.Context, req *PostRequest) (*PostResponse, error) {
	post, err := h.store.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, huma.Error404NotFound("post not found")
		}

		h.logger.Error("failed to get post", zap.Int64("id", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get post")
	}

	return &PostResponse{Body: toPostBody(post)}, nil
}

func toPostBody(post *posts.Post) PostBody {
	return PostBody{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
	}
}
