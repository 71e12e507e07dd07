// Package cmd provides the root command and CLI setup for seedstrip.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seedstrip.dev/pkg/seedstrip/internal/adapter"
	"seedstrip.dev/pkg/seedstrip/internal/controller"
	"seedstrip.dev/pkg/seedstrip/internal/domain"
	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

var seedFSAdapter adapter.SeedFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// keywordFlag narrows discovery to seed files whose name contains the keyword.
var keywordFlag string

// globPatterns overrides the keyword-derived glob when set.
var globPatterns []string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	seedFSAdapter = adapter.NewLocalSeedFSAdapter()
	reportStore = adapter.NewLocalReportStore()
	workflow = domain.NewWorkflow(seedFSAdapter, reportStore, ui)
}

const pathsHelp = `Accepts file and directory paths:
  - .                   scan the working tree for seed files
  - db/seeds            scan one directory recursively
  - db/seeds/base.sql   process a single file`

const rootLongDescription = `Seedstrip rewrites SQL seed and migration files so the datastore can
generate primary keys itself. It removes tuple-leading UUID literals from
INSERT values and drops the matching id column from INSERT column lists.

` + pathsHelp

const runLongDescription = `Strip seed files under the given paths (default: current directory).

` + pathsHelp

const scanLongDescription = `List seed files and the UUID-shaped literals recognized in them without
modifying anything.

` + pathsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seedstrip",
		Short: "Strip UUID primary keys from SQL seed files",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a fresh, fully flagged root command for tests that
// need an isolated command tree.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for strip run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVarP(&keywordFlag, keywordFlagName, "k", viper.GetString(keywordConfigKey), "filename keyword used to derive the seed file glob")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(keywordFlagName), keywordConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&globPatterns, globFlagName, "g", viper.GetStringSlice(globsConfigKey), "seed file glob, overrides the keyword (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(globFlagName), globsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
