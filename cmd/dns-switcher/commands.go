package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/dns-switcher/internal/config"
	"github.com/user/dns-switcher/internal/core"
	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/logger"
	"github.com/user/dns-switcher/internal/probe"
	"github.com/user/dns-switcher/internal/ui"
)

func newTrayCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run the menu bar app (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(opts)
		},
	}
}

func runTray(opts *options) error {
	// Load the config while stderr is still the terminal so a fatal error
	// is visible to the user.
	svc, err := newService(opts)
	if err != nil {
		return err
	}

	if err := logger.Init(); err != nil {
		// keep running; the tray is still usable without a log file
		fmt.Printf("Failed to open log file: %v\n", err)
	}
	logger.Info("DNS Switcher starting...")

	ui.Run(svc, opts.resolveConfigPath())
	return nil
}

func newStatusCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active nameservers and which entry they match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			initCLILogging()
			svc, err := newService(opts)
			if err != nil {
				return err
			}

			svc.Refresh()
			snap, err := await(svc)
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), snap, format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text or yaml")
	return cmd
}

func newUseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "use <provider|custom>",
		Short: "Apply a provider's nameservers or the custom entry",
		Example: `  dns-switcher use cloudflare
  dns-switcher use custom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initCLILogging()
			svc, err := newService(opts)
			if err != nil {
				return err
			}

			if err := svc.SwitchTo(core.ParseTarget(args[0])); err != nil {
				return err
			}
			snap, err := await(svc)
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), snap, formatText)
		},
	}
}

func newClearCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove manual nameservers and go back to DHCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initCLILogging()
			svc, err := newService(opts)
			if err != nil {
				return err
			}

			svc.Clear()
			snap, err := await(svc)
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), snap, formatText)
		},
	}
}

func newProvidersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the built-in providers and the custom entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolveConfigPath()
			cfgManager := config.NewManager(path)
			if err := cfgManager.Load(); err != nil {
				return err
			}
			return writeProviders(cmd.OutOrStdout(), dns.DefaultProviders().Providers(), *cfgManager.Get())
		},
	}
}

func newProbeCommand(opts *options) *cobra.Command {
	var (
		timeout time.Duration
		domain  string
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Send a test query to each active nameserver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initCLILogging()
			svc, err := newService(opts)
			if err != nil {
				return err
			}

			svc.Refresh()
			snap, err := await(svc)
			if err != nil {
				return err
			}
			if len(snap.Servers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No manual nameservers set; DNS comes from DHCP.")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout+time.Second)
			defer cancel()

			results, err := probe.New(probe.WithTimeout(timeout), probe.WithDomain(domain)).Probe(ctx, snap.Servers)
			if err != nil {
				return err
			}
			return writeProbe(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "per-server query timeout")
	cmd.Flags().StringVar(&domain, "domain", "google.com", "name to resolve")
	return cmd
}

func newLogsCommand() *cobra.Command {
	var truncate bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if truncate {
				if err := logger.InitAt(logger.Dir()); err != nil {
					return err
				}
				return logger.ClearLogs()
			}

			content, err := logger.ReadLogs()
			if err != nil {
				return fmt.Errorf("failed to read logs: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&truncate, "clear", false, "truncate the log file instead of printing it")
	return cmd
}
