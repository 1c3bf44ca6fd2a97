package cmd

import (
	"fmt"

	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/spf13/cobra"
)

var (
	shiftYears  int
	shiftMonths int
	shiftDays   string
	shiftTime   bool
)

var shiftCmd = &cobra.Command{
	Use:   "shift [field=value...]",
	Short: "Moves a date by years, months and days",
	Long: `Moves a date by whole years and months, then by days. A day of
month that does not exist in the target month falls back to the last
day that does.

Examples:
  scal shift year=2001 mon=1 mday=31 --months 1
  scal shift year=2000 mon=1 mday=1 --days 60
  scal shift jd=2451545 --days 1/2 --time`,
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
	shiftCmd.Flags().IntVar(&shiftYears, "years", 0, "years to add")
	shiftCmd.Flags().IntVar(&shiftMonths, "months", 0, "months to add")
	shiftCmd.Flags().StringVar(&shiftDays, "days", "", "days to add, may be a rational such as 1/2")
	shiftCmd.Flags().BoolVarP(&shiftTime, "time", "t", false, "resolve a date-time")
}

func runShift(cmd *cobra.Command, args []string) error {
	req, err := request(args, shiftTime)
	if err != nil {
		return err
	}
	days, err := parseRat("days", shiftDays)
	if err != nil {
		return err
	}

	result, err := svc.Shift(cmd.Context(), &service.ShiftRequest{
		Request: *req,
		Years:   shiftYears,
		Months:  shiftMonths,
		Days:    days,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Date.String())
	return nil
}
