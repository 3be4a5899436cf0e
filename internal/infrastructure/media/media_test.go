package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 1024)
	require.NoError(t, err)

	t.Run("stores images", func(t *testing.T) {
		url, err := store.Save(bytes.NewReader(pngPixel))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, URLPrefix+"/media_"))
		assert.True(t, strings.HasSuffix(url, ".png"))

		data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, URLPrefix+"/")))
		require.NoError(t, err)
		assert.Equal(t, pngPixel, data)

		require.NoError(t, store.Remove(url))
		assert.NoFileExists(t, filepath.Join(dir, strings.TrimPrefix(url, URLPrefix+"/")))
	})

	t.Run("rejects non images", func(t *testing.T) {
		_, err := store.Save(strings.NewReader("just some text"))
		assert.ErrorIs(t, err, ErrNotImage)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("rejects svg", func(t *testing.T) {
		svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`
		_, err := store.Save(strings.NewReader(svg))
		assert.ErrorIs(t, err, ErrNotImage)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		big := append(append([]byte{}, pngPixel...), make([]byte, 2048)...)
		_, err := store.Save(bytes.NewReader(big))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("remove ignores foreign urls", func(t *testing.T) {
		assert.NoError(t, store.Remove("https://cdn.example.com/a.png"))
		assert.NoError(t, store.Remove(URLPrefix+"/../secret"))
	})

	t.Run("remove only touches generated names", func(t *testing.T) {
		keep := filepath.Join(dir, "config.png")
		require.NoError(t, os.WriteFile(keep, pngPixel, 0o644))

		require.NoError(t, store.Remove(URLPrefix+"/config.png"))
		assert.FileExists(t, keep)
		require.NoError(t, os.Remove(keep))
	})
}
