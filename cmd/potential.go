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

// getPotentialCmd returns the potential command.
func getPotentialCmd() *cobra.Command {
	potentialCmd := &cobra.Command{
		Use:   "potential",
		Short: "Aggregate storage potential into regions",
		Long: `Aggregate country storage potential into R5, R10 and World regions.

Onshore and offshore totals are derived for every variant, the share of
potential lost between baseline and final estimates is recomputed from
regional sums. If a World override file is configured, its figures replace
the World sums. Storage limits of the analysis regions are derived from the
configured thresholds.

Outputs:
  101_Analysis_dataset_r5_r10.csv  regional potential
  101_global_limits.csv            storage limits (Gt CO2)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(lifecycle.Pipeline.Potential)
		},
	}
	return potentialCmd
}
