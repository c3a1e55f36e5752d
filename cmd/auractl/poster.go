package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randomtoy/auradream/internal/domain"
	"github.com/randomtoy/auradream/internal/poster"
)

func newPosterCmd() *cobra.Command {
	var (
		values [6]float64
		style  string
		seed   uint64
		out    string
	)

	cmd := &cobra.Command{
		Use:   "poster",
		Short: "Render a poster from an explicit emotion vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := domain.ParseStyleMode(style)
			if err != nil {
				return err
			}
			v := domain.NewEmotionVector(values[0], values[1], values[2], values[3], values[4], values[5])
			img, err := poster.Render(v, mode, seed)
			if err != nil {
				return err
			}
			if err := writePNG(out, img); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}

	f := cmd.Flags()
	for i, d := range domain.Dimensions() {
		f.Float64Var(&values[i], queryName(d), 0.5, fmt.Sprintf("%s intensity in [0,1]", d))
	}
	f.StringVarP(&style, "style", "s", string(domain.StyleHybrid), "poster style: hybrid, geometric_focus or aura_focus")
	f.Uint64Var(&seed, "seed", 0, "layout seed")
	f.StringVarP(&out, "out", "o", "poster.png", "output file")
	return cmd
}

func queryName(d domain.Dimension) string {
	return strings.ToLower(d.String())
}
