package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/signkit/ledlayout"
	"github.com/signkit/ledlayout/catalog"
	"github.com/signkit/ledlayout/font"
	"github.com/signkit/ledlayout/render"
)

// charPlacement is one character's placement in the JSON report.
type charPlacement struct {
	Char      string                  `json:"char"`
	Fallback  bool                    `json:"fallback,omitempty"`
	Positions []ledlayout.LEDPosition `json:"positions"`
}

// placeReport is the JSON output of the place command.
type placeReport struct {
	Text        string                `json:"text"`
	ModuleSKU   string                `json:"moduleSku"`
	ModuleCount int                   `json:"moduleCount"`
	Chars       []charPlacement       `json:"chars"`
	Power       catalog.PowerEstimate `json:"power"`
}

func newPlaceCmd(catalogPath *string) *cobra.Command {
	var (
		text        string
		fontPath    string
		sizePx      float64
		moduleSKU   string
		columns     int
		orientation string
		count       int
		ppi         float64
		spacing     float64
		uppercase   bool
		outPath     string
		previewPath string
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Render text to outlines and compute LED placements",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if text == "" {
				return fmt.Errorf("--text is required")
			}

			cat, err := loadCatalog(*catalogPath)
			if err != nil {
				return err
			}
			module, ok := cat.Module(moduleSKU)
			if !ok {
				return fmt.Errorf("unknown module sku %q", moduleSKU)
			}

			fontData := goregular.TTF
			if fontPath != "" {
				fontData, err = os.ReadFile(fontPath)
				if err != nil {
					return fmt.Errorf("read font: %w", err)
				}
			}
			provider, err := font.Parse(fontData)
			if err != nil {
				return err
			}

			if uppercase {
				// Channel letters are conventionally set in caps.
				text = cases.Upper(language.English).String(text)
			}

			cfg := ledlayout.DefaultPlacementConfig(module.Info())
			cfg.PixelsPerInch = ppi
			cfg.ColumnCount = columns
			cfg.Orientation = ledlayout.Orientation(orientation)
			if count != 0 {
				cfg.TargetCount = count
			}

			shapes := provider.Layout(text, sizePx, spacing)
			report := placeReport{Text: text, ModuleSKU: moduleSKU}
			for _, shape := range shapes {
				outline := ledlayout.NewOutline(shape.Path, 0)
				positions := ledlayout.GenerateLEDPositions(outline, cfg)
				report.ModuleCount += len(positions)
				report.Chars = append(report.Chars, charPlacement{
					Char:      string(shape.Rune),
					Fallback:  shape.Fallback,
					Positions: positions,
				})
				logger.Debug("placed character",
					"char", string(shape.Rune), "modules", len(positions))
			}

			report.Power, err = cat.EstimatePower(module, report.ModuleCount)
			if err != nil {
				return err
			}
			logger.Info("placement complete",
				"chars", len(report.Chars), "modules", report.ModuleCount,
				"watts", report.Power.TotalWatts)

			if previewPath != "" {
				if err := writePreview(previewPath, shapes, cfg); err != nil {
					return err
				}
				logger.Info("preview written", "path", previewPath)
			}

			return writeJSON(outPath, report)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "text to place modules for")
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF/OTF font file (default: embedded Go Regular)")
	cmd.Flags().Float64Var(&sizePx, "size", 200, "letter height in outline units (pixels per em)")
	cmd.Flags().StringVar(&moduleSKU, "module", "HL-S3", "module SKU from the catalog")
	cmd.Flags().IntVar(&columns, "columns", 1, "module columns per stroke (1-5)")
	cmd.Flags().StringVar(&orientation, "orientation", "auto", "module orientation: auto, horizontal, vertical")
	cmd.Flags().IntVar(&count, "count", 0, "total module target count (0 derives from module density)")
	cmd.Flags().Float64Var(&ppi, "ppi", 10, "outline units per physical inch")
	cmd.Flags().Float64Var(&spacing, "letter-spacing", 0, "extra advance between letters, in outline units")
	cmd.Flags().BoolVar(&uppercase, "uppercase", false, "fold text to upper case before layout")
	cmd.Flags().StringVar(&outPath, "out", "", "JSON output file (default: stdout)")
	cmd.Flags().StringVar(&previewPath, "preview", "", "write a PNG preview to this path")
	return cmd
}

// writePreview renders each character's outline and modules into one PNG.
// Characters are already positioned on a shared line, so a single combined
// path previews the whole text.
func writePreview(path string, shapes []font.CharShape, cfg ledlayout.PlacementConfig) error {
	var all []ledlayout.LEDPosition
	for _, s := range shapes {
		outline := ledlayout.NewOutline(s.Path, 0)
		all = append(all, ledlayout.GenerateLEDPositions(outline, cfg)...)
	}

	merged := mergePaths(shapes)
	outline := ledlayout.NewOutline(merged, 0)
	img := render.Preview(outline, all, cfg, render.Options{})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()
	return render.WritePNG(f, img)
}

// mergePaths concatenates the character paths into one multi-contour path.
func mergePaths(shapes []font.CharShape) *ledlayout.Path {
	merged := ledlayout.NewPath()
	for _, s := range shapes {
		appendPath(merged, s.Path)
	}
	return merged
}

// appendPath replays src's elements onto dst.
func appendPath(dst, src *ledlayout.Path) {
	for _, elem := range src.Elements() {
		switch e := elem.(type) {
		case ledlayout.MoveTo:
			dst.MoveTo(e.Point.X, e.Point.Y)
		case ledlayout.LineTo:
			dst.LineTo(e.Point.X, e.Point.Y)
		case ledlayout.QuadTo:
			dst.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case ledlayout.CubicTo:
			dst.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case ledlayout.Close:
			dst.Close()
		}
	}
}

// writeJSON writes v as indented JSON to path, or stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
