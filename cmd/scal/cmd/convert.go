package cmd

import (
	"github.com/spf13/cobra"
)

var convertTime bool

var convertCmd = &cobra.Command{
	Use:   "convert [field=value...]",
	Short: "Shows every representation of a date",
	Long: `Completes the given fields and prints the date in every
representation: JD, civil, ordinal, commercial and week numbers.

Without fields, today is shown.

Examples:
  scal convert year=2000 mon=2 mday=29
  scal convert year=2000 yday=60
  scal convert jd=2451545 hour=6 offset=+01:00 --time`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVarP(&convertTime, "time", "t", false, "resolve a date-time")
}

func runConvert(cmd *cobra.Command, args []string) error {
	req, err := request(args, convertTime)
	if err != nil {
		return err
	}

	result, err := svc.Resolve(cmd.Context(), req)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result.Map())
	return nil
}
