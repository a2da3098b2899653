package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"launchscroll/internal/config"
	"launchscroll/internal/eventbus"
	"launchscroll/internal/logging"
	"launchscroll/internal/spacex"
	"launchscroll/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run starts the interactive launch browser
func run(ctx context.Context, opts *rootOptions) error {
	// Log entries are held until the log file is known; the terminal
	// belongs to the UI while it runs
	logOut := logging.NewDeferred()
	logger := logging.NewLogger(logOut, "info")

	// Create event bus
	bus := eventbus.New(logger)
	unsubscribe := subscribeTelemetry(bus, logger)
	var logFile io.Closer
	defer func() {
		// Drain queued events before the log file closes
		bus.Close()
		unsubscribe()
		if logFile != nil {
			_ = logFile.Close()
		}
	}()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set up logging
	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	logFile = f
	logging.SetLevel(logger, cfg.Log.Level)
	if err := logOut.Attach(f); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	if opts.endpoint != "" {
		logger.WithField("endpoint", cfg.API.Endpoint).Info("endpoint overridden by flag")
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := spacex.NewClient(cfg.API.Endpoint,
		spacex.WithTimeout(cfg.API.Timeout.Duration),
		spacex.WithUserAgent(cfg.API.UserAgent),
		spacex.WithCircuitBreaker(cfg.API.CircuitBreaker.FailureThreshold, cfg.API.CircuitBreaker.Delay.Duration),
		spacex.WithLogger(logger),
	)

	// Create UI model
	uiModel := ui.NewModel(ctx, bus, cfg, client, logger, opts.search)

	// Create Bubble Tea program
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		// Mouse reporting lasts for the program lifetime and is released on exit
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, programOpts...)
	uiModel.SetProgram(p)

	if os.Getenv("LAUNCHSCROLL_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("program exited with error")
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}
