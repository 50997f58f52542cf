package qrcode_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/serroba/shortlink/internal/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRenderer(t *testing.T) {
	t.Run("renders a decodable png of the requested size", func(t *testing.T) {
		renderer := qrcode.NewPNGRenderer(128)

		data, err := renderer.PNG("http://localhost:8888/abc123")
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
		assert.Equal(t, 128, img.Bounds().Dy())
	})

	t.Run("falls back to the default size", func(t *testing.T) {
		renderer := qrcode.NewPNGRenderer(0)

		data, err := renderer.PNG("http://localhost:8888/abc123")
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := qrcode.NewPNGRenderer(64).PNG("")

		assert.Error(t, err)
	})
}
