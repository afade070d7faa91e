package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPowerCmd(catalogPath *string) *cobra.Command {
	var (
		moduleSKU string
		count     int
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Estimate electrical load and PSU sizing for a module count",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cat, err := loadCatalog(*catalogPath)
			if err != nil {
				return err
			}
			module, ok := cat.Module(moduleSKU)
			if !ok {
				return fmt.Errorf("unknown module sku %q", moduleSKU)
			}

			est, err := cat.EstimatePower(module, count)
			if err != nil {
				return err
			}
			logger.Info("power estimate",
				"modules", est.ModuleCount, "watts", est.TotalWatts,
				"psu", est.PSU.SKU, "psuCount", est.PSUCount)
			return writeJSON(outPath, est)
		},
	}

	cmd.Flags().StringVar(&moduleSKU, "module", "HL-S3", "module SKU from the catalog")
	cmd.Flags().IntVar(&count, "count", 0, "number of modules")
	cmd.Flags().StringVar(&outPath, "out", "", "JSON output file (default: stdout)")
	return cmd
}
