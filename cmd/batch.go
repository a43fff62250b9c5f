package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmuldo/seasonmatch/batch"
	"github.com/mmuldo/seasonmatch/extract"
	"github.com/mmuldo/seasonmatch/palette"
	"github.com/mmuldo/seasonmatch/report"
	"github.com/spf13/cobra"
)

var (
	batchInput   string
	batchOutput  string
	batchColors  int
	batchTopN    int
	batchWorkers int
	batchFormat  string
	batchReport  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scores a product CSV against the season palettes",
	Long: `Reads a CSV of products (product_name, product_url, image_path),
finds each image's dominant colors and writes the same rows back out with
the best matching seasons and their CIE76 score. Rows that cannot be
scored stay in the output with the scoring columns blank.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaults()

		pal, e := palette.LoadOrDefault(palettesFile)
		if e != nil {
			return fmt.Errorf("loading palettes: %w", e)
		}

		in, e := os.Open(batchInput)
		if e != nil {
			return e
		}
		defer in.Close()

		items, e := batch.ReadItems(in)
		if e != nil {
			return e
		}

		p := &batch.Processor{
			Palette: pal,
			Extract: extract.Options{Colors: intDefault(cmd, "colors", batchColors)},
			TopN:    intDefault(cmd, "topn", batchTopN),
			Workers: intDefault(cmd, "workers", batchWorkers),
			Log:     slog.Default(),
		}
		results := p.Run(cmd.Context(), items)

		if dir := filepath.Dir(batchOutput); dir != "." {
			if e := os.MkdirAll(dir, 0755); e != nil {
				return e
			}
		}
		out, e := os.Create(batchOutput)
		if e != nil {
			return e
		}
		defer out.Close()

		switch batchFormat {
		case "csv":
			e = batch.WriteCSV(out, results)
		case "json":
			e = batch.WriteJSON(out, results)
		default:
			return fmt.Errorf("unknown output format %q, want csv or json", batchFormat)
		}
		if e != nil {
			return e
		}

		if batchReport != "" {
			html, e := report.BatchPage(results, pal.Names())
			if e != nil {
				return e
			}
			if e := os.WriteFile(batchReport, []byte(html), 0644); e != nil {
				return e
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "CSV with product_name, product_url, image_path")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output path")
	batchCmd.Flags().IntVarP(&batchColors, "colors", "k", extract.DefaultColors, "number of dominant colors to extract per image")
	batchCmd.Flags().IntVarP(&batchTopN, "topn", "n", batch.DefaultTopN, "how many top seasons to report, best plus also_works_for")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", batch.DefaultWorkers, "images processed at once")
	batchCmd.Flags().StringVar(&batchFormat, "format", "csv", "output format, csv or json")
	batchCmd.Flags().StringVar(&batchReport, "report", "", "also write an HTML report to this path")

	batchCmd.MarkFlagRequired("input")
	batchCmd.MarkFlagRequired("output")
}
