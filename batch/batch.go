// Package batch scores product CSVs against season palettes.
package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mmuldo/seasonmatch/extract"
	"github.com/mmuldo/seasonmatch/palette"
	"github.com/mmuldo/seasonmatch/season"
)

const (
	DefaultTopN    = 3
	DefaultWorkers = 8
)

// input columns required in the product CSV
var requiredColumns = []string{"product_name", "product_url", "image_path"}

// output header, input columns first
var outputColumns = []string{"product_name", "product_url", "image_path", "dominant_hexes", "best_for", "also_works_for", "score_CIE76"}

// Item is one input row.
type Item struct {
	ProductName string `json:"product_name"`
	ProductURL  string `json:"product_url"`
	ImagePath   string `json:"image_path"`
}

// Result is a scored input row. A row that could not be scored keeps its
// item fields, carries the failure in Err and leaves the rest zero.
type Result struct {
	Item
	DominantHexes []string `json:"dominant_hexes"`
	BestFor       string   `json:"best_for"`
	AlsoWorksFor  []string `json:"also_works_for"`
	Score         float64  `json:"score_CIE76"`
	Err           string   `json:"error,omitempty"`
}

// Scored reports whether the row was successfully scored. Scored rows always
// name a best season.
func (r Result) Scored() bool { return r.BestFor != "" }

// Processor scores items against a season palette.
type Processor struct {
	Palette palette.Palette
	Extract extract.Options

	// TopN is how many seasons to report, the best plus runners-up.
	TopN int

	// Workers bounds how many images are processed at once.
	Workers int

	Log *slog.Logger
}

// Run scores every item and returns results in input order. Items that fail
// come back blank rather than failing the batch.
func (p *Processor) Run(ctx context.Context, items []Item) []Result {
	workers := p.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	start := time.Now()
	results := make([]Result, len(items))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, it := range items {
		if e := ctx.Err(); e != nil {
			results[i] = Result{Item: it, Err: e.Error()}
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, it Item) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = p.score(it)
		}(i, it)
	}
	wg.Wait()

	scored := 0
	for _, r := range results {
		if r.Scored() {
			scored++
		}
	}
	p.logger().Info("batch finished",
		"items", len(items),
		"scored", scored,
		"blank", len(items)-scored,
		"elapsed", time.Since(start),
	)

	return results
}

func (p *Processor) score(it Item) Result {
	r := Result{Item: it}

	if it.ImagePath == "" {
		r.Err = "no image path"
		return r
	}
	if _, e := os.Stat(it.ImagePath); e != nil {
		p.logger().Warn("skipping item, image missing", "product", it.ProductName, "path", it.ImagePath)
		r.Err = fmt.Sprintf("image missing: %s", it.ImagePath)
		return r
	}

	img, e := extract.Load(it.ImagePath)
	if e != nil {
		p.logger().Warn("skipping item, image unreadable", "product", it.ProductName, "error", e)
		r.Err = e.Error()
		return r
	}

	hexes, e := extract.DominantHexes(img, p.Extract)
	if e != nil || len(hexes) == 0 {
		p.logger().Warn("skipping item, no dominant colors", "product", it.ProductName, "error", e)
		if e != nil {
			r.Err = e.Error()
		} else {
			r.Err = "no dominant colors"
		}
		return r
	}

	ranked, e := season.Rank(hexes, p.Palette)
	if e != nil || len(ranked) == 0 {
		p.logger().Warn("skipping item, ranking failed", "product", it.ProductName, "error", e)
		if e != nil {
			r.Err = e.Error()
		} else {
			r.Err = "no seasons ranked"
		}
		return r
	}

	top := season.Top(ranked, p.topN())
	r.DominantHexes = hexes
	r.BestFor = top[0].Season
	r.Score = top[0].Score
	r.AlsoWorksFor = make([]string, 0, len(top)-1)
	for _, entry := range top[1:] {
		r.AlsoWorksFor = append(r.AlsoWorksFor, entry.Season)
	}

	return r
}

func (p *Processor) topN() int {
	if p.TopN < 1 {
		return DefaultTopN
	}
	return p.TopN
}

func (p *Processor) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

// ReadItems decodes the input CSV. The header must carry the required
// columns; extra columns are ignored. Field values are trimmed.
func ReadItems(r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)

	header, e := cr.Read()
	if e != nil {
		return nil, fmt.Errorf("reading csv header: %w", e)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("input csv is missing required columns: %s", strings.Join(missing, ", "))
	}

	var items []Item
	for {
		rec, e := cr.Read()
		if e == io.EOF {
			break
		}
		if e != nil {
			return nil, fmt.Errorf("reading csv: %w", e)
		}

		items = append(items, Item{
			ProductName: strings.TrimSpace(rec[idx["product_name"]]),
			ProductURL:  strings.TrimSpace(rec[idx["product_url"]]),
			ImagePath:   strings.TrimSpace(rec[idx["image_path"]]),
		})
	}

	return items, nil
}

// WriteCSV writes results under the output header. Rows that were not
// scored leave the analysis columns empty.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if e := cw.Write(outputColumns); e != nil {
		return e
	}

	for _, r := range results {
		rec := []string{r.ProductName, r.ProductURL, r.ImagePath, "", "", "", ""}
		if r.Scored() {
			rec[3] = strings.Join(r.DominantHexes, ",")
			rec[4] = r.BestFor
			rec[5] = strings.Join(r.AlsoWorksFor, " | ")
			rec[6] = fmt.Sprintf("%.2f", r.Score)
		}
		if e := cw.Write(rec); e != nil {
			return e
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
