package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seedstrip.dev/pkg/seedstrip/internal/domain"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List seed files and recognized UUID literals",
		Long:  scanLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scan(context.Background(), domain.ScanArgs{
				Roots:    parsePaths(args),
				Globs:    patternGlobs(),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				KnownIDs: viper.GetStringSlice(knownIDsConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
