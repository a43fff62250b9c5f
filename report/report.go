// Package report renders the HTML pages for batch runs and the upload UI.
package report

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/flosch/pongo2"
	"github.com/mmuldo/seasonmatch/batch"
	"github.com/mmuldo/seasonmatch/season"
)

//go:embed templates/index.html.tpl
var indexSource string

//go:embed templates/report.html.tpl
var reportSource string

var (
	indexTpl  = pongo2.Must(pongo2.FromString(indexSource))
	reportTpl = pongo2.Must(pongo2.FromString(reportSource))
)

// UploadResult is a scored upload shown on the index page.
type UploadResult struct {
	Hexes   []string
	Best    string
	Also    []string
	Ranking []season.Entry
}

// IndexPage renders the upload page, along with the scoring result or error
// message when there is one.
func IndexPage(res *UploadResult, errMsg string) (string, error) {
	ctxt := pongo2.Context{
		"result": nil,
		"error":  errMsg,
	}

	if res != nil {
		ranking := make([]pongo2.Context, 0, len(res.Ranking))
		for _, entry := range res.Ranking {
			ranking = append(ranking, pongo2.Context{
				"season": entry.Season,
				"score":  fmt.Sprintf("%.2f", entry.Score),
			})
		}
		ctxt["result"] = pongo2.Context{
			"hexes":   res.Hexes,
			"best":    res.Best,
			"also":    strings.Join(res.Also, ", "),
			"ranking": ranking,
		}
	}

	return indexTpl.Execute(ctxt)
}

// BatchPage renders the summary page for a batch run.
func BatchPage(results []batch.Result, seasons []string) (string, error) {
	scored := 0
	rows := make([]pongo2.Context, 0, len(results))
	for _, r := range results {
		if r.Scored() {
			scored++
		}
		rows = append(rows, pongo2.Context{
			"name":   r.ProductName,
			"url":    r.ProductURL,
			"hexes":  r.DominantHexes,
			"best":   r.BestFor,
			"also":   strings.Join(r.AlsoWorksFor, " | "),
			"score":  fmt.Sprintf("%.2f", r.Score),
			"scored": r.Scored(),
			"err":    r.Err,
		})
	}

	return reportTpl.Execute(pongo2.Context{
		"rows":      rows,
		"seasons":   strings.Join(seasons, ", "),
		"scored":    scored,
		"total":     len(results),
		"generated": time.Now().Format(time.RFC1123),
	})
}
