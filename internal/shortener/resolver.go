package shortener

import "context"

// Resolver reads links back out of a Repository.
type Resolver struct {
	store Repository
}

// NewResolver creates a resolver over store.
func NewResolver(store Repository) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the target for code, or ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, code Code) (string, error) {
	link, err := r.store.Lookup(ctx, code)
	if err != nil {
		return "", err
	}

	return link.Target, nil
}

// Recent returns the newest links, at most limit of them.
func (r *Resolver) Recent(ctx context.Context, limit int) ([]*Link, error) {
	limit = ClampLimit(limit)
	if limit == 0 {
		return []*Link{}, nil
	}

	return r.store.Recent(ctx, limit)
}
