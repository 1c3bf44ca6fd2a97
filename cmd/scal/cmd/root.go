package cmd

import (
	"os"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/msto63/scaliger/pkg/core/config"
	"github.com/msto63/scaliger/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	reformName string
	verbose    bool

	appConfig *config.Config
	svc       *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "scal",
	Short: "Calendar arithmetic on the command line",
	Long: `scal converts between Julian Day Numbers, civil, ordinal, commercial
and week-number dates under a configurable Julian/Gregorian reform.

Dates are given as field=value pairs, for example:

  scal convert year=2000 mon=2 mday=29
  scal convert cwyear=2004 cweek=53 cwday=6
  scal convert jd=2451545 hour=12 --time

Missing leading fields are taken from today. Values may be exact
rationals such as sec_fraction=1/3.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SCALIGER_CONFIG or ./configs/scaliger.toml)")
	rootCmd.PersistentFlags().StringVar(&reformName, "reform", "", "reform point: italy, england, julian, gregorian or a JDN")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration and builds the calendar service
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reformName != "" {
		sg, err := calendar.ParseReform(reformName)
		if err != nil {
			return err
		}
		cfg.Calendar.Reform = sg
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.NewWithConfig(logging.LoggerConfig{
		ServiceName: "scal",
		Level:       level,
		Format:      "text",
		Output:      cmd.ErrOrStderr(),
	})

	// One-shot commands gain nothing from a cache.
	cfg.Cache.Enabled = false
	s, err := service.FromConfig(cfg, calendar.SystemClock{}, logger)
	if err != nil {
		return err
	}

	appConfig, svc = cfg, s
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if svc != nil {
		svc.Close()
		svc = nil
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if mdwerror.HasCode(err, mdwerror.CodeNotFound) && os.Getenv(config.EnvConfigPath) == "" {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}
