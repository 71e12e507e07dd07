package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seedstrip.dev/pkg/seedstrip/internal/domain"
	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

var dryRunFlag bool
var schemaFlag string
var tableFlag string
var idColumnFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Strip UUID literals and id columns from seed files",
		Long:  runLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Run(context.Background(), domain.RunArgs{
				Roots:    parsePaths(args),
				Globs:    patternGlobs(),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Reports:  m.Path(viper.GetString(outputFlagName)),
				DryRun:   viper.GetBool(dryRunConfigKey),
				KnownIDs: viper.GetStringSlice(knownIDsConfigKey),
				Target: domain.Target{
					Schema:   viper.GetString(schemaConfigKey),
					Table:    viper.GetString(tableConfigKey),
					IDColumn: viper.GetString(idColumnConfigKey),
				},
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&dryRunFlag, dryRunFlagName, "n", viper.GetBool(dryRunConfigKey), "print diffs instead of rewriting files")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), dryRunConfigKey)

	cmd.Flags().StringVar(&schemaFlag, schemaFlagName, viper.GetString(schemaConfigKey), "schema of the table whose id column is dropped")
	bindFlagToConfig(cmd.Flags().Lookup(schemaFlagName), schemaConfigKey)

	cmd.Flags().StringVar(&tableFlag, tableFlagName, viper.GetString(tableConfigKey), "table whose id column is dropped from INSERT column lists")
	bindFlagToConfig(cmd.Flags().Lookup(tableFlagName), tableConfigKey)

	cmd.Flags().StringVar(&idColumnFlag, idColumnFlagName, viper.GetString(idColumnConfigKey), "name of the generated primary key column")
	bindFlagToConfig(cmd.Flags().Lookup(idColumnFlagName), idColumnConfigKey)
}

// patternGlobs returns the configured seed file globs, deriving one from the
// filename keyword when none are set explicitly.
func patternGlobs() []string {
	globs := viper.GetStringSlice(globsConfigKey)
	if len(globs) > 0 {
		return globs
	}

	keyword := strings.TrimSpace(viper.GetString(keywordConfigKey))
	if keyword == "" {
		return []string{"*.sql"}
	}

	return []string{"*" + keyword + "*.sql"}
}
