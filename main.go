// gh-runwatch is a terminal dashboard for GitHub Actions workflow runs
// across multiple repositories.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/kyleking/gh-runwatch/internal/app"
	"github.com/kyleking/gh-runwatch/internal/config"
	"github.com/kyleking/gh-runwatch/internal/github"
	"github.com/kyleking/gh-runwatch/internal/logging"
	"github.com/kyleking/gh-runwatch/internal/watcher"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "path to config file (default: XDG config dir)")
		interval    = flag.Duration("interval", 0, "poll interval, overrides the config (e.g. 30s, 2m)")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("gh-runwatch %s\n", version)
		return nil
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("gh-runwatch requires an interactive terminal")
	}

	var (
		cfg *config.Config
		err error
	)

	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logging.Close()

	client, err := github.NewClient()
	if err != nil {
		return fmt.Errorf("GitHub credentials not found: %w\nRun 'gh auth login' or set GITHUB_TOKEN", err)
	}

	pollInterval := cfg.Interval()
	if *interval > 0 {
		pollInterval = *interval
	}
	if pollInterval < time.Second {
		pollInterval = time.Second
	}

	watch := watcher.NewWatchSet(cfg.Repos...)
	poller := watcher.NewPoller(client, watch, pollInterval, logger)
	updates := watcher.NewUpdateChannel(64, logger)
	poller.Subscribe(updates)

	logger.Info("starting gh-runwatch",
		"version", version,
		"repos", len(cfg.Repos),
		"interval", pollInterval,
	)

	poller.Start()
	defer poller.Stop()

	model := app.New(poller, updates, client, cfg, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}
