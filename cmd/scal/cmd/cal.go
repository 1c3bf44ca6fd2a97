package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/scaliger/internal/scaliger/render"
	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/spf13/cobra"
)

var (
	calWeeks  bool
	calMonday bool
	calSunday bool
)

var calCmd = &cobra.Command{
	Use:   "cal [[month] year]",
	Short: "Prints a month or a whole year",
	Long: `Prints a calendar in the style of cal(1). Days lost to the reform
are left out: October 1582 under the Italian reform jumps from the 4th
to the 15th.

Examples:
  scal cal              # current month
  scal cal 10 1582      # one month
  scal cal 1752 --reform england
  scal cal --weeks --monday`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCal,
}

func init() {
	rootCmd.AddCommand(calCmd)
	calCmd.Flags().BoolVarP(&calWeeks, "weeks", "w", false, "show week numbers")
	calCmd.Flags().BoolVarP(&calMonday, "monday", "m", false, "weeks start on Monday")
	calCmd.Flags().BoolVarP(&calSunday, "sunday", "s", false, "weeks start on Sunday")
	calCmd.MarkFlagsMutuallyExclusive("monday", "sunday")
}

func runCal(cmd *cobra.Command, args []string) error {
	if calMonday || calSunday {
		appConfig.Calendar.WeekStartsMonday = calMonday
		s, err := service.FromConfig(appConfig, nil, svc.Logger())
		if err != nil {
			return err
		}
		svc.Close()
		svc = s
	}

	today, err := svc.Today("")
	if err != nil {
		return err
	}
	year, month := today.Year(), today.Month()

	months := []int{month}
	switch len(args) {
	case 1:
		if year, err = strconv.Atoi(args[0]); err != nil {
			return invalidArg("invalid year %q", args[0])
		}
		months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	case 2:
		if month, err = strconv.Atoi(args[0]); err != nil {
			return invalidArg("invalid month %q", args[0])
		}
		if year, err = strconv.Atoi(args[1]); err != nil {
			return invalidArg("invalid year %q", args[1])
		}
		months = []int{month}
	}

	layouts := make([]*service.MonthLayout, 0, len(months))
	for _, m := range months {
		layout, err := svc.Month(cmd.Context(), year, m, "")
		if err != nil {
			return err
		}
		layouts = append(layouts, layout)
	}

	r := render.New(lipgloss.NewRenderer(cmd.OutOrStdout()), render.Options{WeekNumbers: calWeeks})
	fmt.Fprintln(cmd.OutOrStdout(), r.Months(layouts, 3))
	return nil
}
