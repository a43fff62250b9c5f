package extract

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")

	f, e := os.Create(path)
	require.NoError(t, e)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

func TestLoad(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	for x := 0; x < 12; x++ {
		for y := 0; y < 8; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	loaded, e := Load(writePNG(t, img))
	require.NoError(t, e)
	assert.Equal(t, 12, loaded.Bounds().Dx())
	assert.Equal(t, 8, loaded.Bounds().Dy())
}

func TestLoadMissingFile(t *testing.T) {
	_, e := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, e)
}

func TestDecodeGarbage(t *testing.T) {
	_, e := Decode(strings.NewReader("not an image"))
	require.Error(t, e)
	assert.Contains(t, e.Error(), "decoding image")
}
