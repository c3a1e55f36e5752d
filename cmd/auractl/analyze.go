package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/domain"
)

func newAnalyzeCmd(env func(context.Context) (*environment, error)) *cobra.Command {
	var (
		file       string
		style      string
		variations int
		seed       uint64
		outDir     string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [dream text]",
		Short: "Analyze a dream and write its charts and posters as PNG files",
		Long: `Analyze a dream description and write radar.png, spectrum.png and one
poster per variation into the output directory. The text is taken from the
arguments, from --file, or from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if variations < 1 || variations > app.MaxVariations {
				return fmt.Errorf("--variations must be between 1 and %d", app.MaxVariations)
			}
			text, err := readDream(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}

			e, err := env(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			req := app.InterpretRequest{Text: text, Style: style, Variations: variations}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			resp, err := e.svc.Interpret(cmd.Context(), req)
			if err != nil {
				return err
			}

			art, err := e.svc.Render(resp.Entry)
			if err != nil {
				return err
			}
			files, err := writeArtwork(outDir, art)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					ID       string          `json:"id"`
					Analysis domain.Analysis `json:"analysis"`
					Style    string          `json:"style"`
					Seeds    []uint64        `json:"seeds"`
					Files    []string        `json:"files"`
				}{resp.Entry.ID, resp.Entry.Analysis, string(resp.Entry.Style), resp.Entry.Seeds, files})
			}
			printEntry(out, resp.Entry)
			fmt.Fprintln(out)
			for _, f := range files {
				fmt.Fprintln(out, "wrote", f)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "read the dream from a file")
	f.StringVarP(&style, "style", "s", string(domain.StyleHybrid), "poster style: hybrid, geometric_focus or aura_focus")
	f.IntVarP(&variations, "variations", "n", app.DefaultVariations, fmt.Sprintf("number of posters (1-%d)", app.MaxVariations))
	f.Uint64Var(&seed, "seed", 0, "seed of the first poster (random when unset)")
	f.StringVarP(&outDir, "out", "o", ".", "output directory")
	f.BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func readDream(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(raw)) == "" {
			return "", errors.New("no dream given: pass text, --file, or pipe it on stdin")
		}
		return string(raw), nil
	}
}

func writeArtwork(dir string, art app.Artwork) ([]string, error) {
	var files []string
	radar := filepath.Join(dir, "radar.png")
	if err := writePNG(radar, art.Radar); err != nil {
		return nil, err
	}
	spectrum := filepath.Join(dir, "spectrum.png")
	if err := writePNG(spectrum, art.Spectrum); err != nil {
		return nil, err
	}
	files = append(files, radar, spectrum)
	for i, p := range art.Posters {
		path := filepath.Join(dir, fmt.Sprintf("aura_tarot_poster_%d.png", i+1))
		if err := writePNG(path, p.Image); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func printEntry(w io.Writer, e domain.Entry) {
	a := e.Analysis
	fmt.Fprintf(w, "Model: %s (%s)\n", a.Model, a.Source)
	if e.ID != "" {
		fmt.Fprintf(w, "Dream: %s\n", e.ID)
	}
	fmt.Fprintf(w, "\nSymbolic summary\n  %s\n\nEmotions\n", a.Summary)
	for _, d := range domain.Dimensions() {
		v := a.Emotions.Get(d)
		fmt.Fprintf(w, "  %-15s %.2f %s\n", d, v, strings.Repeat("#", int(v*20+0.5)))
	}
	fmt.Fprintf(w, "\nShadow\n  %s\nEnergy\n  %s\nGuidance\n  %s\n", a.Tarot.Shadow, a.Tarot.Energy, a.Tarot.Guidance)
	fmt.Fprintf(w, "\nStyle: %s  Seeds: %v\n", e.Style.Label(), e.Seeds)
}
