package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/castawaylabs/status-board/system"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve and ping the configured status page",
	RunE:  check,
}

func init() {
	checkCmd.Flags().String("dns", "", "DNS server host:port (default from /etc/resolv.conf)")

	rootCmd.AddCommand(checkCmd)
}

func check(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend:\n - %s\n", strings.Join(cfg.Backend.Describe(), "\n - "))

	u, err := url.Parse(cfg.Backend.BaseURL())
	if err != nil {
		return err
	}

	server, _ := cmd.Flags().GetString("dns")
	addrs, err := system.LookupHost(u.Hostname(), server)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "DNS: %s -> %s\n", u.Hostname(), strings.Join(addrs, ", "))

	if err := cfg.Backend.Ping(context.Background()); err != nil {
		logrus.Errorf("Cannot ping backend: %v", err)
		return err
	}
	fmt.Fprintln(out, "Ping OK")

	return nil
}
