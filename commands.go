package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"launchscroll/internal/config"
	"launchscroll/internal/eventbus"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type rootOptions struct {
	configPath string
	endpoint   string
	search     string
	logFile    string
}

// apply overrides configuration values with the flags that were given
func (o *rootOptions) apply(cfg *config.Config) {
	if o.endpoint != "" {
		cfg.API.Endpoint = o.endpoint
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
}

// newRootCmd returns the root command
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "launchscroll",
		Short:         "Browse SpaceX launches in the terminal",
		Long:          "launchscroll lists SpaceX launches with live search, loading more results as you scroll.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is "+config.DefaultPath()+")")
	rootCmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "launch query endpoint (overrides api.endpoint)")
	rootCmd.Flags().StringVarP(&opts.search, "search", "s", "", "initial search text")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "log file (overrides log.file)")

	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := eventbus.New(nil)
			saved := make(chan string, 1)
			bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
				if event, ok := e.(eventbus.ConfigSavedEvent); ok {
					saved <- event.Path
				}
			})

			configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
			path := configSvc.Path()
			if _, err := os.Stat(path); err == nil && !force {
				bus.Close()
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				bus.Close()
				return err
			}

			err := configSvc.Save(config.DefaultConfig())
			// Close drains the queue, so the saved event has been handled
			bus.Close()
			if err != nil {
				return err
			}

			select {
			case p := <-saved:
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
			default:
			}
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigServiceWithBus(nil, opts.configPath).Path())
			return nil
		},
	}

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "launchscroll %s\n", version)
			return nil
		},
	}
}
