package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signkit/ledlayout"
)

func newValidateCmd() *cobra.Command {
	var (
		prevArg string
		candArg string
		strict  bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Gate a free-hand path edit against its previous outline",
		Long: `validate checks a candidate SVG path against the outline it replaces:
self-intersection, bounding-box escape, curvature spikes, and degenerate
geometry. Arguments are path data strings, or @file references to read the
data from disk. Exits non-zero when the edit is rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			prev, err := readPathArg(prevArg)
			if err != nil {
				return err
			}
			cand, err := readPathArg(candArg)
			if err != nil {
				return err
			}

			result := ledlayout.ValidatePathEdit(prev, cand, nil, ledlayout.ValidateOptions{Strict: strict})
			if err := writeJSON(outPath, result); err != nil {
				return err
			}

			switch {
			case result.OK && result.Reason == "":
				logger.Info("edit accepted")
			case result.OK:
				logger.Warn("edit accepted with warning", "reason", result.Reason)
			default:
				logger.Error("edit rejected", "reason", result.Reason)
				return fmt.Errorf("path edit rejected: %s", result.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prevArg, "prev", "", "previous path data, or @file")
	cmd.Flags().StringVar(&candArg, "cand", "", "candidate path data, or @file")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	cmd.Flags().StringVar(&outPath, "out", "", "JSON result file (default: stdout)")
	_ = cmd.MarkFlagRequired("prev")
	_ = cmd.MarkFlagRequired("cand")
	return cmd
}

// readPathArg returns the argument itself, or the contents of the file it
// references with an @ prefix.
func readPathArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
	if err != nil {
		return "", fmt.Errorf("read path data: %w", err)
	}
	return string(data), nil
}
