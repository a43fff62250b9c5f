package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmuldo/seasonmatch/extract"
	"github.com/mmuldo/seasonmatch/palette"
	"github.com/mmuldo/seasonmatch/season"
	"github.com/spf13/cobra"
)

var (
	rankHexes  []string
	rankColors int
	rankCrop   string
	rankAlgo   string
	rankMerge  float64
	rankTop    int
	rankJSON   bool
)

var (
	bestStyle = lipgloss.NewStyle().Bold(true)
	alsoStyle = lipgloss.NewStyle().Faint(true)
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank [image]",
	Short: "Ranks the season palettes for a garment",
	Long: `Extracts the dominant colors of a garment image and ranks every
season palette by how closely its swatches match them, best first.

Colors can also be given directly:

  seasonmatch rank --hex '#1b365d' --hex '#2c2a4a'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaults()

		pal, e := palette.LoadOrDefault(palettesFile)
		if e != nil {
			return fmt.Errorf("loading palettes: %w", e)
		}

		hexes := rankHexes
		switch {
		case len(hexes) > 0 && len(args) > 0:
			return fmt.Errorf("give an image path or --hex colors, not both")
		case len(hexes) == 0 && len(args) == 0:
			return fmt.Errorf("give an image path or at least one --hex color")
		case len(hexes) == 0:
			hexes, e = imageHexes(cmd, args[0])
			if e != nil {
				return e
			}
		}

		ranked, e := season.Rank(hexes, pal)
		if e != nil {
			return e
		}
		if len(ranked) == 0 {
			return fmt.Errorf("nothing to rank, every season in the palette is empty")
		}

		topN := intDefault(cmd, "top", rankTop)
		if rankJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newRankOutput(hexes, ranked, topN))
		}

		out := cmd.OutOrStdout()
		printSwatches(out, hexes)
		printRanking(out, ranked, topN)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringArrayVar(&rankHexes, "hex", nil, "hex color to rank instead of an image, repeatable")
	rankCmd.Flags().IntVarP(&rankColors, "colors", "k", extract.DefaultColors, "number of dominant colors to extract")
	rankCmd.Flags().StringVar(&rankCrop, "crop", "", "crop box before analysis as x0,y0,x1,y1")
	rankCmd.Flags().StringVar(&rankAlgo, "algorithm", string(extract.AlgorithmQuantize), "extraction algorithm, quantize or kmeans")
	rankCmd.Flags().Float64Var(&rankMerge, "merge", 0, "fold together detected colors closer than this CIE2000 distance, 2.3 is just noticeable")
	rankCmd.Flags().IntVarP(&rankTop, "top", "n", 3, "how many seasons to report, best plus runners-up")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "print machine readable output")
}

// rankOutput is the machine readable scoring result, shared by rank --json
// and the HTTP API.
type rankOutput struct {
	Colors       []string       `json:"colors"`
	Best         string         `json:"best"`
	AlsoWorksFor []string       `json:"also_works_for"`
	Ranking      []season.Entry `json:"ranking"`
}

// newRankOutput slices the full ranking into best plus runners-up. ranked
// must not be empty.
func newRankOutput(hexes []string, ranked []season.Entry, topN int) rankOutput {
	top := season.Top(ranked, topN)
	also := make([]string, 0, len(top)-1)
	for _, entry := range top[1:] {
		also = append(also, entry.Season)
	}

	return rankOutput{
		Colors:       hexes,
		Best:         top[0].Season,
		AlsoWorksFor: also,
		Ranking:      ranked,
	}
}

// imageHexes extracts dominant colors from the image at path using the rank
// command's flags.
func imageHexes(cmd *cobra.Command, path string) ([]string, error) {
	img, e := extract.Load(path)
	if e != nil {
		return nil, e
	}

	opts := extract.Options{
		Colors:         intDefault(cmd, "colors", rankColors),
		Algorithm:      extract.Algorithm(rankAlgo),
		MergeThreshold: rankMerge,
	}
	if rankCrop != "" {
		r, e := parseCrop(rankCrop)
		if e != nil {
			return nil, e
		}
		opts.Crop = &r
	}

	return extract.DominantHexes(img, opts)
}

// parseCrop parses "x0,y0,x1,y1" into a rectangle.
func parseCrop(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("crop must be x0,y0,x1,y1, got %q", s)
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, e := strconv.Atoi(strings.TrimSpace(p))
		if e != nil {
			return image.Rectangle{}, fmt.Errorf("crop must be x0,y0,x1,y1, got %q", s)
		}
		vals[i] = v
	}

	return image.Rect(vals[0], vals[1], vals[2], vals[3]), nil
}

// chip renders a colored terminal swatch for hex.
func chip(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}

func printSwatches(w io.Writer, hexes []string) {
	parts := make([]string, 0, len(hexes))
	for _, h := range hexes {
		parts = append(parts, chip(h)+" "+h)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func printRanking(w io.Writer, ranked []season.Entry, topN int) {
	top := season.Top(ranked, topN)

	fmt.Fprintf(w, "%s (ΔE %.2f)\n", bestStyle.Render("Best for: "+top[0].Season), top[0].Score)
	if len(top) > 1 {
		names := make([]string, 0, len(top)-1)
		for _, entry := range top[1:] {
			names = append(names, entry.Season)
		}
		fmt.Fprintln(w, alsoStyle.Render("Also works for: "+strings.Join(names, ", ")))
	}

	fmt.Fprintln(w)
	for _, entry := range ranked {
		fmt.Fprintf(w, "  %-14s %7.2f\n", entry.Season, entry.Score)
	}
}
