package store

import (
	"fmt"

	"github.com/serroba/shortlink/internal/shortener"
)

// unavailable marks err as a storage failure while keeping it inspectable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", shortener.ErrStorageUnavailable, op, err)
}
