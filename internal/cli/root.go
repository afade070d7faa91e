// Package cli implements the ledlayout command-line interface.
//
// Commands:
//   - place: render text to outlines and compute LED module placements
//   - validate: gate a free-hand path edit against its previous outline
//   - power: estimate electrical load and PSU sizing for a module count
//
// All commands support --verbose (-v) for debug-level logging and --catalog
// for an alternative module/PSU table in TOML format.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/signkit/ledlayout/catalog"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// newLogger creates a logger with timestamp formatting that writes to w and
// filters messages at the given level.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the logger attached.
func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger stored by withLogger, or a default
// info-level logger when none is attached.
func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey).(*charmlog.Logger); ok {
		return l
	}
	return newLogger(os.Stderr, charmlog.InfoLevel)
}

// loadCatalog returns the catalog named by --catalog, or the built-in one.
func loadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// Execute runs the ledlayout CLI and returns an error if any command fails.
func Execute() error {
	var (
		verbose     bool
		catalogPath string
	)

	root := &cobra.Command{
		Use:          "ledlayout",
		Short:        "ledlayout places LED modules inside channel-letter outlines",
		Long:         `ledlayout computes evenly spaced LED module positions inside glyph and free-hand sign outlines, validates path edits, and estimates power loads.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("ledlayout %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "module/PSU catalog TOML file (default: built-in)")

	root.AddCommand(newPlaceCmd(&catalogPath))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newPowerCmd(&catalogPath))

	return root.ExecuteContext(context.Background())
}
