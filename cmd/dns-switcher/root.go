package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/dns-switcher/internal/config"
	"github.com/user/dns-switcher/internal/core"
	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/logger"
)

type options struct {
	configPath string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dns-switcher",
		Short: "Switch the system DNS servers between well-known providers",
		Long: `DNS Switcher shows which nameservers macOS is using and switches the
Wi-Fi service between built-in providers, a custom entry from
dns_config.yaml, and automatic (DHCP) DNS.

Without a subcommand it starts the menu bar app.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.SetOutput(cmd.ErrOrStderr())
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: "+config.FileName+" next to the app)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print log lines to stderr")

	root.AddCommand(
		newTrayCommand(opts),
		newStatusCommand(opts),
		newUseCommand(opts),
		newClearCommand(opts),
		newProvidersCommand(opts),
		newProbeCommand(opts),
		newLogsCommand(),
	)
	return root
}

func (o *options) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.GetConfigPath()
}

// newService loads the configuration and builds the state machine on top
// of the networksetup/scutil adapter.
func newService(opts *options) (*core.Service, error) {
	path := opts.resolveConfigPath()
	cfgManager := config.NewManager(path)
	if err := cfgManager.Load(); err != nil {
		logger.Error("Failed to load config: %v", err)
		return nil, err
	}
	cfg := cfgManager.Get()
	logger.Info("Loaded config %s (custom entry %q, %d servers)", path, cfg.Name, len(cfg.Servers))

	resolver := dns.NewManager(dns.ExecRunner{}, cfg.NetworkService)
	return core.NewService(resolver, dns.DefaultProviders(), *cfg), nil
}

// initCLILogging opens the shared log file without capturing stderr, so
// command errors still reach the terminal.
func initCLILogging() {
	// best effort; one-shot commands work without a log file
	_ = logger.InitAt(logger.Dir())
}

// await waits for every operation to settle and reports StatusError as an
// error so the process exits nonzero.
func await(svc *core.Service) (core.Snapshot, error) {
	svc.Wait()
	snap := svc.Snapshot()
	if snap.Status == core.StatusError {
		return snap, fmt.Errorf("DNS operation failed: %w", snap.Err)
	}
	return snap, nil
}
