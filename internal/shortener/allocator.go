package shortener

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how many generated candidates are tried.
const DefaultMaxAttempts = 20

// Allocator secures a unique code for a target, either the caller's alias or
// a generated one.
type Allocator struct {
	store        Repository
	generateCode CodeGenerator
	maxAttempts  int
	observer     Observer
	logger       *zap.Logger
	now          func() time.Time
}

// NewAllocator creates an allocator. A maxAttempts below one falls back to
// DefaultMaxAttempts and a nil observer to NopObserver.
func NewAllocator(
	store Repository,
	generator CodeGenerator,
	maxAttempts int,
	observer Observer,
	logger *zap.Logger,
) *Allocator {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	if observer == nil {
		observer = NopObserver{}
	}

	return &Allocator{
		store:        store,
		generateCode: generator,
		maxAttempts:  maxAttempts,
		observer:     observer,
		logger:       logger,
		now:          time.Now,
	}
}

// Allocate stores target under alias when one is given, otherwise under a
// generated code. Aliases are tried exactly once and never altered.
func (a *Allocator) Allocate(ctx context.Context, target, alias string) (*Link, error) {
	if alias = strings.TrimSpace(alias); alias != "" {
		return a.allocateAlias(ctx, target, Code(alias))
	}

	return a.allocateGenerated(ctx, target)
}

func (a *Allocator) allocateAlias(ctx context.Context, target string, code Code) (*Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	link := a.newLink(code, target)

	inserted, err := a.store.TryInsert(ctx, link)
	if err != nil {
		a.logger.Error("failed to store custom code", zap.String("code", string(code)), zap.Error(err))

		return nil, err
	}

	if !inserted {
		a.observer.AliasConflict()

		return nil, fmt.Errorf("%w: %s", ErrAliasTaken, code)
	}

	a.observer.Allocated(true)

	return link, nil
}

func (a *Allocator) allocateGenerated(ctx context.Context, target string) (*Link, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		link := a.newLink(Code(a.generateCode()), target)

		inserted, err := a.store.TryInsert(ctx, link)
		if err != nil {
			a.logger.Error("failed to store generated code",
				zap.String("code", string(link.Code)),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)

			return nil, err
		}

		if inserted {
			a.observer.Allocated(false)

			return link, nil
		}

		a.observer.Collision()
		a.logger.Debug("generated code collided, retrying",
			zap.String("code", string(link.Code)),
			zap.Int("attempt", attempt),
		)
	}

	a.observer.Exhausted()
	a.logger.Error("allocation exhausted", zap.Int("attempts", a.maxAttempts))

	return nil, fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}

func (a *Allocator) newLink(code Code, target string) *Link {
	return &Link{
		Code:      code,
		Target:    target,
		CreatedAt: a.now().UTC(),
	}
}
