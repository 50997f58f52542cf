package shortener

import "context"

// Repository defines the interface for link storage operations.
type Repository interface {
	// TryInsert stores the link only if its code is unused. It reports false,
	// with a nil error, when the code already exists. The check and the write
	// happen as one atomic operation inside the store.
	TryInsert(ctx context.Context, link *Link) (bool, error)

	// Lookup returns the link for a code or ErrNotFound.
	Lookup(ctx context.Context, code Code) (*Link, error)

	// Recent returns up to limit links, newest first. Limits are clamped
	// with ClampLimit.
	Recent(ctx context.Context, limit int) ([]*Link, error)

	// Ping checks storage connectivity.
	Ping(ctx context.Context) error
}
