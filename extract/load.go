// Package extract finds the dominant colors of garment images.
package extract

import (
	"fmt"
	_ "golang.org/x/image/webp"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// Load decodes the image at path. jpeg, png, gif and webp are supported.
func Load(path string) (image.Image, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes image data from r.
func Decode(r io.Reader) (image.Image, error) {
	i, _, e := image.Decode(r)
	if e != nil {
		return nil, fmt.Errorf("decoding image: %w", e)
	}

	return i, nil
}
