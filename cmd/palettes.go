package cmd

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mmuldo/seasonmatch/colorspace"
	"github.com/mmuldo/seasonmatch/palette"
	"github.com/spf13/cobra"
)

var palettesByHue bool

// palettesCmd represents the palettes command
var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "Lists the season palettes",
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaults()

		pal, e := palette.LoadOrDefault(palettesFile)
		if e != nil {
			return e
		}

		for _, s := range pal {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d swatches\n", s.Name, len(s.Swatches))
		}
		return nil
	},
}

var palettesShowCmd = &cobra.Command{
	Use:   "show [season]",
	Short: "Shows season swatches",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaults()

		pal, e := palette.LoadOrDefault(palettesFile)
		if e != nil {
			return e
		}

		if len(args) == 1 {
			swatches, ok := pal.Get(args[0])
			if !ok {
				return fmt.Errorf("no season named %q, have %v", args[0], pal.Names())
			}
			pal = palette.Palette{{Name: args[0], Swatches: swatches}}
		}

		out := cmd.OutOrStdout()
		for i, s := range pal {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, bestStyle.Render(s.Name))

			swatches := s.Swatches
			if palettesByHue {
				swatches = hueSorted(swatches)
			}
			printSwatches(out, swatches)
		}
		return nil
	},
}

var palettesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks that every palette swatch parses",
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaults()

		pal, e := palette.LoadOrDefault(palettesFile)
		if e != nil {
			return e
		}
		if e := pal.Validate(); e != nil {
			return e
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d seasons ok\n", len(pal))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(palettesCmd)
	palettesCmd.AddCommand(palettesShowCmd)
	palettesCmd.AddCommand(palettesValidateCmd)

	palettesShowCmd.Flags().BoolVar(&palettesByHue, "by-hue", false, "order swatches by hue instead of palette order")
}

// hueSorted reorders swatches by HSV hue for display. Swatches that fail to
// parse keep their place at the end.
func hueSorted(swatches []string) []string {
	out := append([]string(nil), swatches...)

	hue := func(hex string) (float64, bool) {
		rgb, e := colorspace.HexToRGB(hex)
		if e != nil {
			return 0, false
		}
		c := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
		h, _, _ := c.Hsv()
		return h, true
	}

	sort.SliceStable(out, func(i, j int) bool {
		hi, oki := hue(out[i])
		hj, okj := hue(out[j])
		if !oki || !okj {
			return oki && !okj
		}
		return hi < hj
	})

	return out
}
