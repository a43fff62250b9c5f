package extract

import (
	"fmt"
	"image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/esimov/colorquant"
	"github.com/jkl1337/go-chromath"
	"github.com/jkl1337/go-chromath/deltae"
	"github.com/mmuldo/seasonmatch/colorspace"
	xdraw "golang.org/x/image/draw"
)

var klch = &deltae.KLChDefault

// Algorithm selects how representative colors are clustered.
type Algorithm string

const (
	// AlgorithmQuantize reduces the image with median-cut quantization.
	AlgorithmQuantize Algorithm = "quantize"
	// AlgorithmKMeans clusters pixels with k-means.
	AlgorithmKMeans Algorithm = "kmeans"
)

const (
	DefaultColors = 5
	DefaultMaxDim = 300
)

// Options control dominant color extraction. The zero value asks for
// DefaultColors colors with the quantize algorithm.
type Options struct {
	Colors    int
	MaxDim    int
	Algorithm Algorithm

	// Crop restricts analysis to a region of the image.
	Crop *image.Rectangle

	// MergeThreshold folds together colors closer than this CIE2000
	// distance, keeping the more prevalent one. Zero disables merging.
	MergeThreshold float64
}

// colorVol is a color and the number of pixels it covers.
type colorVol struct {
	rgb   colorspace.RGB
	count int
}

// byCoverage orders most prevalent first. Equal counts fall back to hex
// order so results never depend on map iteration.
type byCoverage []colorVol

func (cvs byCoverage) Len() int { return len(cvs) }
func (cvs byCoverage) Less(i, j int) bool {
	if cvs[i].count != cvs[j].count {
		return cvs[i].count > cvs[j].count
	}
	return cvs[i].rgb.Hex() < cvs[j].rgb.Hex()
}
func (cvs byCoverage) Swap(i, j int) { cvs[i], cvs[j] = cvs[j], cvs[i] }

// DominantHexes finds up to opts.Colors representative colors of img, most
// prevalent first, as hex strings. Images with less variation than asked
// for yield fewer colors.
func DominantHexes(img image.Image, opts Options) ([]string, error) {
	if opts.Colors <= 0 {
		opts.Colors = DefaultColors
	}
	if opts.MaxDim <= 0 {
		opts.MaxDim = DefaultMaxDim
	}
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmQuantize
	}

	prepared, e := prepare(img, opts.Crop, opts.MaxDim)
	if e != nil {
		return nil, e
	}

	var cvs []colorVol
	switch opts.Algorithm {
	case AlgorithmQuantize:
		cvs, e = quantize(prepared, opts.Colors)
	case AlgorithmKMeans:
		cvs, e = kmeans(prepared, opts.Colors)
	default:
		return nil, fmt.Errorf("unknown algorithm %q, want %q or %q", opts.Algorithm, AlgorithmQuantize, AlgorithmKMeans)
	}
	if e != nil {
		return nil, e
	}

	sort.Sort(byCoverage(cvs))
	if opts.MergeThreshold > 0 {
		cvs = merge(cvs, opts.MergeThreshold)
		sort.Sort(byCoverage(cvs))
	}

	seen := make(map[string]bool, len(cvs))
	hexes := make([]string, 0, len(cvs))
	for _, cv := range cvs {
		h := cv.rgb.Hex()
		if seen[h] {
			continue
		}
		seen[h] = true
		hexes = append(hexes, h)
	}
	if len(hexes) > opts.Colors {
		hexes = hexes[:opts.Colors]
	}

	return hexes, nil
}

// prepare crops and downscales img into an NRGBA ready for clustering.
// Images already within maxDim are copied at full size, never upscaled.
func prepare(img image.Image, crop *image.Rectangle, maxDim int) (*image.NRGBA, error) {
	src := img.Bounds()
	if crop != nil {
		src = crop.Intersect(src)
		if src.Empty() {
			return nil, fmt.Errorf("crop %v lies outside the image bounds %v", *crop, img.Bounds())
		}
	}

	w, h := src.Dx(), src.Dy()
	if w > maxDim || h > maxDim {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	o := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(o, o.Bounds(), img, src, xdraw.Src, nil)
	return o, nil
}

// quantize reduces img to at most n colors with median cut and counts the
// pixels each color covers. Fully transparent pixels are skipped.
func quantize(img *image.NRGBA, n int) ([]colorVol, error) {
	b := img.Bounds()
	o := image.NewNRGBA(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y))
	colorquant.NoDither.Quantize(img, o, n, false, true)

	counts := make(map[colorspace.RGB]int)
	w, h := o.Bounds().Max.X, o.Bounds().Max.Y
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			r, g, bl, a := o.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			counts[colorspace.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}]++
		}
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("image has no opaque pixels to analyze")
	}

	cvs := make([]colorVol, 0, len(counts))
	for rgb, count := range counts {
		cvs = append(cvs, colorVol{rgb: rgb, count: count})
	}
	return cvs, nil
}

// kmeans clusters the image with k-means and counts cluster coverage. No
// background masks are applied; a garment is often exactly the white or
// black a mask would throw away.
func kmeans(img image.Image, n int) ([]colorVol, error) {
	items, e := prominentcolor.KmeansWithAll(n, img, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	if e != nil {
		return nil, fmt.Errorf("kmeans clustering: %w", e)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("kmeans clustering found no colors")
	}

	cvs := make([]colorVol, 0, len(items))
	for _, it := range items {
		cvs = append(cvs, colorVol{
			rgb:   colorspace.RGB{R: uint8(it.Color.R), G: uint8(it.Color.G), B: uint8(it.Color.B)},
			count: it.Cnt,
		})
	}
	return cvs, nil
}

// merge folds colors whose CIE2000 distance to an already kept color falls
// below threshold into that color. cvs must be sorted most prevalent first.
func merge(cvs []colorVol, threshold float64) []colorVol {
	kept := make([]colorVol, 0, len(cvs))
	keptLabs := make([]chromath.Lab, 0, len(cvs))

	for _, cv := range cvs {
		lab := toChromath(cv.rgb.Lab())

		absorbed := false
		for i := range kept {
			if deltae.CIE2000(keptLabs[i], lab, klch) < threshold {
				kept[i].count += cv.count
				absorbed = true
				break
			}
		}
		if !absorbed {
			kept = append(kept, cv)
			keptLabs = append(keptLabs, lab)
		}
	}

	return kept
}

func toChromath(l colorspace.Lab) chromath.Lab {
	return chromath.Lab{l.L, l.A, l.B}
}
