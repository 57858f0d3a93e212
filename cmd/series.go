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
	"github.com/ccslim/ccslim/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getSeriesCmd returns the series command.
func getSeriesCmd() *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Merge, interpolate and accumulate scenario series",
		Long: `Merge scenario series of World, R5 and R10 tables.

Scenarios reported for World but not for R5 or R10 regions are reported as
coverage gaps and kept. Series are interpolated onto every year of the
analysis period, storage variables are accumulated and all series are read
off at net-zero CO2 (-1) and net-zero GHG (-2) years.

Outputs:
  102_ccs_data_r5_r10.csv          annual and cumulative series
  102_netzero_ccs_data_r5_r10.csv  net-zero snapshots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(lifecycle.Pipeline.Series)
		},
	}
	return seriesCmd
}
