package cmd

import (
	"fmt"
	"os"

	app "github.com/ccslim/ccslim/pkg"
	"github.com/ccslim/ccslim/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// addPersistentFlags adds flags shared by all stage commands.
func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(
		"data-dir", "d", "",
		"base directory of input files",
	)
	cmd.PersistentFlags().StringP(
		"output-dir", "o", "",
		"directory for derived tables",
	)
	cmd.PersistentFlags().BoolP(
		"archive", "a", false,
		"also store derived tables in a SQLite archive",
	)
}

// flagOptions converts explicitly set flags into config options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		s, _ := flags.GetString("data-dir")
		res = append(res, config.OptDataDir(s))
	}
	if flags.Changed("output-dir") {
		s, _ := flags.GetString("output-dir")
		res = append(res, config.OptOutputDir(s))
	}
	if flags.Changed("archive") {
		b, _ := flags.GetBool("archive")
		res = append(res, config.OptArchive(b))
	}
	return res
}
