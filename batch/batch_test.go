package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmuldo/seasonmatch/extract"
	"github.com/mmuldo/seasonmatch/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietProcessor() *Processor {
	return &Processor{
		Palette: palette.Default(),
		Extract: extract.Options{Colors: 3},
		Workers: 2,
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// solidPNG writes a single-color image and returns its path.
func solidPNG(t *testing.T, c color.NRGBA) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "garment.png")
	f, e := os.Create(path)
	require.NoError(t, e)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

func TestReadItems(t *testing.T) {
	in := strings.NewReader(
		"product_name, product_url ,image_path,extra\n" +
			"Linen Shirt,https://example.com/shirt, images/shirt.png ,ignored\n" +
			"Wool Coat,https://example.com/coat,images/coat.png,ignored\n")

	items, e := ReadItems(in)
	require.NoError(t, e)
	require.Len(t, items, 2)

	assert.Equal(t, Item{
		ProductName: "Linen Shirt",
		ProductURL:  "https://example.com/shirt",
		ImagePath:   "images/shirt.png",
	}, items[0])
	assert.Equal(t, "Wool Coat", items[1].ProductName)
}

func TestReadItemsMissingColumns(t *testing.T) {
	in := strings.NewReader("product_name,picture\nShirt,shirt.png\n")

	_, e := ReadItems(in)
	require.Error(t, e)
	assert.Contains(t, e.Error(), "product_url")
	assert.Contains(t, e.Error(), "image_path")
}

func TestReadItemsHeaderOnly(t *testing.T) {
	in := strings.NewReader("product_name,product_url,image_path\n")

	items, e := ReadItems(in)
	require.NoError(t, e)
	assert.Empty(t, items)
}

func TestRunScoresNavyGarment(t *testing.T) {
	path := solidPNG(t, color.NRGBA{R: 0x1b, G: 0x36, B: 0x5d, A: 255})

	p := quietProcessor()
	results := p.Run(context.Background(), []Item{
		{ProductName: "Navy Dress", ImagePath: path},
	})

	require.Len(t, results, 1)
	r := results[0]
	require.True(t, r.Scored(), "err: %s", r.Err)
	assert.Equal(t, "Deep Winter", r.BestFor)
	assert.Less(t, r.Score, 5.0)
	assert.NotEmpty(t, r.DominantHexes)
	assert.Len(t, r.AlsoWorksFor, 2, "default topn reports two runners-up")
}

func TestRunKeepsInputOrderAndBlanksFailures(t *testing.T) {
	good := solidPNG(t, color.NRGBA{R: 0xb5, G: 0x65, B: 0x1d, A: 255})

	items := []Item{
		{ProductName: "First", ImagePath: filepath.Join(t.TempDir(), "missing1.png")},
		{ProductName: "Second", ImagePath: good},
		{ProductName: "Third", ImagePath: ""},
		{ProductName: "Fourth", ImagePath: filepath.Join(t.TempDir(), "missing2.png")},
	}

	results := quietProcessor().Run(context.Background(), items)
	require.Len(t, results, 4)

	for i, it := range items {
		assert.Equal(t, it.ProductName, results[i].ProductName)
	}
	assert.False(t, results[0].Scored())
	assert.True(t, results[1].Scored())
	assert.Equal(t, "Warm Autumn", results[1].BestFor)
	assert.False(t, results[2].Scored())
	assert.False(t, results[3].Scored())
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := quietProcessor().Run(ctx, []Item{{ProductName: "Never", ImagePath: "x.png"}})
	require.Len(t, results, 1)
	assert.False(t, results[0].Scored())
	assert.NotEmpty(t, results[0].Err)
}

func TestWriteCSV(t *testing.T) {
	results := []Result{
		{
			Item:          Item{ProductName: "Navy Dress", ProductURL: "https://example.com/dress", ImagePath: "dress.png"},
			DominantHexes: []string{"#1b365d", "#2c2a4a"},
			BestFor:       "Deep Winter",
			AlsoWorksFor:  []string{"Bright Winter", "Cool Summer"},
			Score:         1.234,
		},
		{
			Item: Item{ProductName: "Broken", ProductURL: "u", ImagePath: "missing.png"},
			Err:  "image missing",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_name,product_url,image_path,dominant_hexes,best_for,also_works_for,score_CIE76", lines[0])
	assert.Equal(t, `Navy Dress,https://example.com/dress,dress.png,"#1b365d,#2c2a4a",Deep Winter,Bright Winter | Cool Summer,1.23`, lines[1])
	assert.Equal(t, "Broken,u,missing.png,,,,", lines[2])
}

func TestWriteJSON(t *testing.T) {
	results := []Result{
		{
			Item:          Item{ProductName: "Navy Dress"},
			DominantHexes: []string{"#1b365d"},
			BestFor:       "Deep Winter",
			AlsoWorksFor:  []string{},
			Score:         0.5,
		},
		{
			Item: Item{ProductName: "Broken"},
			Err:  "image missing",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "Deep Winter", decoded[0]["best_for"])
	_, hasErr := decoded[0]["error"]
	assert.False(t, hasErr)
	assert.Equal(t, "image missing", decoded[1]["error"])
}
