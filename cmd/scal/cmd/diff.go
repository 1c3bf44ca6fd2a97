package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	diffFrom string
	diffTo   string
	diffTime bool
)

var diffCmd = &cobra.Command{
	Use:   "diff --from fields --to fields",
	Short: "Counts the days between two dates",
	Long: `Prints to - from in days, as an exact rational.

Examples:
  scal diff --from year=2000,mon=1,mday=1 --to year=2000,mon=3,mday=1
  scal diff --from year=1582,mon=10,mday=4 --to year=1582,mon=10,mday=15`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVar(&diffFrom, "from", "", "first date as comma separated fields")
	diffCmd.Flags().StringVar(&diffTo, "to", "", "second date as comma separated fields")
	diffCmd.Flags().BoolVarP(&diffTime, "time", "t", false, "resolve date-times")
}

func runDiff(cmd *cobra.Command, args []string) error {
	from, err := request([]string{diffFrom}, diffTime)
	if err != nil {
		return err
	}
	to, err := request([]string{diffTo}, diffTime)
	if err != nil {
		return err
	}

	days, err := svc.Diff(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), days.RatString())
	return nil
}
