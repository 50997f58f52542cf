// Package qrcode renders short URLs as scannable PNG images.
package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length, in pixels, of rendered images.
const DefaultSize = 256

// Renderer encodes content as a PNG image.
type Renderer interface {
	PNG(content string) ([]byte, error)
}

// PNGRenderer renders QR codes with medium error recovery.
type PNGRenderer struct {
	size int
}

// NewPNGRenderer creates a renderer producing size x size images.
func NewPNGRenderer(size int) *PNGRenderer {
	if size <= 0 {
		size = DefaultSize
	}

	return &PNGRenderer{size: size}
}

func (r *PNGRenderer) PNG(content string) ([]byte, error) {
	png, err := qr.Encode(content, qr.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	return png, nil
}
