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

// getExceedanceCmd returns the exceedance command.
func getExceedanceCmd() *cobra.Command {
	exceedanceCmd := &cobra.Command{
		Use:   "exceedance",
		Short: "Compute when storage limits are exceeded",
		Long: `Compute exceedance metrics for every region, threshold and scenario.

Years to exceed are counted from the net-zero CO2 year at the storage rate
of that year. The exceedance year is the first year the extrapolated
cumulative storage is above the limit. Requires outputs of the potential
and series stages.

Output:
  103_exceedence_years.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(lifecycle.Pipeline.Exceedance)
		},
	}
	return exceedanceCmd
}
