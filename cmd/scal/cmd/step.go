package cmd

import (
	"fmt"

	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/spf13/cobra"
)

var (
	stepFrom   string
	stepTo     string
	stepStride string
	stepTime   bool
)

var stepCmd = &cobra.Command{
	Use:   "step --from fields --to fields [--stride n]",
	Short: "Lists the dates between two dates",
	Long: `Lists every date from --from to --to inclusive, stride days apart.
Without --stride the walk goes one day at a time towards --to. The
number of dates is limited by server.max_step_items.

Examples:
  scal step --from year=2000,mon=1,mday=1 --to year=2000,mon=1,mday=10 --stride 3
  scal step --from year=1582,mon=10,mday=1 --to year=1582,mon=10,mday=20`,
	Args: cobra.NoArgs,
	RunE: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().StringVar(&stepFrom, "from", "", "first date as comma separated fields")
	stepCmd.Flags().StringVar(&stepTo, "to", "", "last date as comma separated fields")
	stepCmd.Flags().StringVar(&stepStride, "stride", "", "days between dates, may be negative or a rational")
	stepCmd.Flags().BoolVarP(&stepTime, "time", "t", false, "resolve date-times")
}

func runStep(cmd *cobra.Command, args []string) error {
	from, err := request([]string{stepFrom}, stepTime)
	if err != nil {
		return err
	}
	to, err := request([]string{stepTo}, stepTime)
	if err != nil {
		return err
	}
	stride, err := parseRat("stride", stepStride)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, err = svc.Step(cmd.Context(), &service.StepRequest{From: *from, To: *to, Stride: stride},
		func(r *service.Result) error {
			_, err := fmt.Fprintf(out, "%s  %d\n", r.Date.String(), r.Date.JD())
			return err
		})
	return err
}
