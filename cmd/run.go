/*
Copyright © 2026 The ccslim Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/ccslim/ccslim/internal/iodb"
	"github.com/ccslim/ccslim/internal/iofs"
	"github.com/ccslim/ccslim/internal/iopipeline"
	"github.com/ccslim/ccslim/pkg/db"
	"github.com/ccslim/ccslim/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// stageFunc is a method expression of lifecycle.Pipeline.
type stageFunc func(lifecycle.Pipeline, context.Context) error

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run all pipeline stages",
		Long: `Run potential, series, exceedance, validate and stats stages in order.

The validate stage runs only when a rules file is configured. A JSON
report of the run is saved as report.json in the output directory.

Examples:
  # Run with inputs from ./data and outputs to ./data/derived
  ccslim run

  # Use other directories and keep a SQLite archive of all tables
  ccslim run -d ~/ccs/data -o ~/ccs/out --archive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(lifecycle.Pipeline.Run)
		},
	}
	return runCmd
}

// runStage creates the pipeline, with an archive if requested, and runs
// one of its stages.
func runStage(stage stageFunc) error {
	ctx := context.Background()

	var ar db.Archiver
	if cfg.Archive {
		if err := iofs.EnsureDir(cfg.OutputDir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		ar = iodb.NewSQLiteArchive()
		if err := ar.Open(ctx, cfg.ArchivePath()); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer ar.Close()
		gn.Info("Archiving results to <em>%s</em>", cfg.ArchivePath())
	}

	p := iopipeline.New(cfg, ar)
	if err := stage(p, ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
