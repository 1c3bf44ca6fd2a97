package cmd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/internal/scaliger/server"
	coreGrpc "github.com/msto63/scaliger/pkg/core/grpc"
	"github.com/msto63/scaliger/pkg/core/health"
	"github.com/msto63/scaliger/pkg/core/version"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	remoteAddr    string
	remoteTimeout time.Duration
	remoteTime    bool
	remoteFrom    string
	remoteTo      string
	remoteStride  string
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Calls a running calendar service",
	Long: `Sends requests to a scaliger server over gRPC.

The address defaults to the server section of the configuration.

Examples:
  scal remote health
  scal remote resolve year=2000 mon=2 mday=29 --addr localhost:9582
  scal remote step --from year=2000,mon=1,mday=1 --to year=2000,mon=1,mday=7`,
}

var remoteHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Shows the health report of the service",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *server.Client, args []string) error {
		resp, err := c.Health(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		m := resp.AsMap()
		fmt.Fprintf(out, "%s %s: %s (up %ss)\n", m["service"], m["version"], m["status"], formatValue(m["uptime_s"]))
		checks, _ := m["checks"].([]interface{})
		for _, raw := range checks {
			check, _ := raw.(map[string]interface{})
			fmt.Fprintf(out, "  %-10s %-9s %s\n", check["name"], check["status"], check["message"])
		}
		return nil
	}),
}

var remoteResolveCmd = &cobra.Command{
	Use:   "resolve [field=value...]",
	Short: "Resolves a date on the service",
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *server.Client, args []string) error {
		req, err := remoteRequest(args)
		if err != nil {
			return err
		}
		resp, err := c.Resolve(ctx, req)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), resp.AsMap())
		return nil
	}),
}

var remoteValidateCmd = &cobra.Command{
	Use:   "validate [field=value...]",
	Short: "Checks whether fields name a date",
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *server.Client, args []string) error {
		req, err := remoteRequest(args)
		if err != nil {
			return err
		}
		resp, err := c.Validate(ctx, req)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), resp.AsMap())
		return nil
	}),
}

var remoteDiffCmd = &cobra.Command{
	Use:   "diff --from fields --to fields",
	Short: "Counts the days between two dates on the service",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *server.Client, args []string) error {
		req, err := remotePair()
		if err != nil {
			return err
		}
		resp, err := c.Diff(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.GetFields()["days"].GetStringValue())
		return nil
	}),
}

var remoteStepCmd = &cobra.Command{
	Use:   "step --from fields --to fields [--stride n]",
	Short: "Streams the dates between two dates from the service",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *server.Client, args []string) error {
		req, err := remotePair()
		if err != nil {
			return err
		}
		if remoteStride != "" {
			if _, err := parseRat("stride", remoteStride); err != nil {
				return err
			}
			req["stride"] = remoteStride
		}
		out := cmd.OutOrStdout()
		return c.Step(ctx, req, func(s *structpb.Struct) error {
			m := s.AsMap()
			_, err := fmt.Fprintf(out, "%s  %s\n", m["date"], formatValue(m["jd"]))
			return err
		})
	}),
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.PersistentFlags().StringVar(&remoteAddr, "addr", "", "service address (default: from config)")
	remoteCmd.PersistentFlags().DurationVar(&remoteTimeout, "timeout", 5*time.Second, "call timeout")

	remoteResolveCmd.Flags().BoolVarP(&remoteTime, "time", "t", false, "resolve a date-time")
	remoteValidateCmd.Flags().BoolVarP(&remoteTime, "time", "t", false, "resolve a date-time")
	for _, c := range []*cobra.Command{remoteDiffCmd, remoteStepCmd} {
		c.Flags().StringVar(&remoteFrom, "from", "", "first date as comma separated fields")
		c.Flags().StringVar(&remoteTo, "to", "", "second date as comma separated fields")
		c.Flags().BoolVarP(&remoteTime, "time", "t", false, "resolve date-times")
	}
	remoteStepCmd.Flags().StringVar(&remoteStride, "stride", "", "days between dates")

	remoteCmd.AddCommand(remoteHealthCmd, remoteResolveCmd, remoteValidateCmd, remoteDiffCmd, remoteStepCmd)
}

// serviceAddress returns --addr or the configured server address, with a
// wildcard host replaced by localhost
func serviceAddress() string {
	if remoteAddr != "" {
		return remoteAddr
	}
	host := appConfig.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, strconv.Itoa(appConfig.Server.Port))
}

type clientFunc func(ctx context.Context, cmd *cobra.Command, c *server.Client, args []string) error

// withClient checks that the service is reachable, connects and runs fn
func withClient(fn clientFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		addr := serviceAddress()
		ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
		defer cancel()

		check := health.TCPCheck("scaliger", addr, remoteTimeout).Check(ctx)
		if check.Status != health.StatusHealthy {
			return mdwerror.Newf("service not reachable at %s: %s", addr, check.Message).
				WithCode(mdwerror.CodeConnectionFailed).
				WithOperation("remote")
		}

		cfg := coreGrpc.DefaultClientConfig(addr)
		cfg.Timeout = remoteTimeout
		cfg.Logger = svc.Logger()
		conn, err := coreGrpc.Dial(cfg, grpc.WithUserAgent("scal/"+version.CLI))
		if err != nil {
			return err
		}
		defer conn.Close()

		return fn(ctx, cmd, server.NewClient(conn), args)
	}
}

func remoteRequest(args []string) (map[string]interface{}, error) {
	req, err := request(args, remoteTime)
	if err != nil {
		return nil, err
	}
	req.Reform = reformName
	return server.EncodeRequest(req), nil
}

func remotePair() (map[string]interface{}, error) {
	encode := func(fields string) (map[string]interface{}, error) {
		return remoteRequest([]string{fields})
	}
	from, err := encode(remoteFrom)
	if err != nil {
		return nil, err
	}
	to, err := encode(remoteTo)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"from": from, "to": to}, nil
}
