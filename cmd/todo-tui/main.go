// Package main is the entry point for the todo-tui application.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/hy4ri/todo-tui/internal/api"
	"github.com/hy4ri/todo-tui/internal/config"
	"github.com/hy4ri/todo-tui/internal/logging"
	"github.com/hy4ri/todo-tui/internal/remote"
	"github.com/hy4ri/todo-tui/internal/storage"
	"github.com/hy4ri/todo-tui/internal/todo"
	"github.com/hy4ri/todo-tui/internal/tui"
)

const version = "0.1.0"

const helpText = `todo-tui - A small terminal todo list

USAGE:
    todo-tui [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file

CONFIGURATION:
    Config file: ~/.config/todo-tui/config.yaml
    Todo file:   ~/.local/share/todo-tui/todos.json

KEYBINDINGS:
    Entry field:
        Enter       Add the typed item
        Tab/Esc     Move to the list

    List:
        j/k         Move down/up
        g/G         Go to top/bottom
        Space/x     Complete/uncomplete item
        d           Delete item
        y           Copy item text
        C           Clear completed items
        Tab/i/a     Back to the entry field
        ?           Show help
        q           Quit

    Mouse:
        Click the checkbox to toggle, X to delete, a row to select it.
`

const configTemplate = `# todo-tui configuration
# Location: ~/.config/todo-tui/config.yaml

storage:
  # Todo file (default: ~/.local/share/todo-tui/todos.json)
  # path: ""

sync:
  # Every save is also pushed to these sinks in the background.
  # HTTP endpoint receiving PUT {url}/sync with the whole list
  # url: ""
  # SQLite database mirroring the list
  # sqlite_path: ""
  timeout: 10s
  retries: 2
  # How long to wait for pending syncs on exit
  flush_timeout: 3s

ui:
  title: "Welcome to my cool todo app"
  # Desktop notification when a save fails
  notify_errors: true

log:
  # path: ""
  level: info
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("todo-tui version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	return runApp()
}

// createConfigTemplate writes a commented config file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp wires storage and sync together and runs the TUI until it exits.
func runApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, err := logging.Open(logging.Options{Path: logPath, Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer logger.Close()

	storagePath, err := cfg.StoragePath()
	if err != nil {
		return err
	}

	syncers, closeSyncers, err := buildSyncers(cfg, logger.Logger)
	if err != nil {
		return err
	}
	defer closeSyncers()

	dispatcher := remote.NewDispatcher(logger.Logger, cfg.Sync.Timeout, syncers...)
	adapter := &storage.Adapter{Path: storagePath, Remote: dispatcher, Logger: logger.Logger}
	svc := todo.NewService(storage.Load(storagePath, logger.Logger), adapter)

	logger.Info("starting", "version", version, "todos", storagePath, "remote", cfg.HasRemoteSync())

	app := tui.NewApp(svc, cfg, logger.Logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, runErr := p.Run()

	// Give in-flight syncs a bounded chance to finish.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sync.FlushTimeout)
	defer cancel()
	if err := dispatcher.Wait(ctx); err != nil {
		logger.Warn("pending syncs abandoned on exit", "err", err)
	}
	dispatched, failed := dispatcher.Stats()
	logger.Info("exiting", "syncs", dispatched, "failed", failed)

	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

// buildSyncers returns the configured sinks. The stub is always present.
func buildSyncers(cfg *config.Config, logger *log.Logger) ([]remote.Syncer, func(), error) {
	syncers := []remote.Syncer{remote.Stub{Logger: logger}}
	closers := []func() error{}

	if cfg.Sync.URL != "" {
		client := api.NewClient(cfg.Sync.URL)
		client.SetTimeout(cfg.Sync.Timeout)
		client.SetRetries(cfg.Sync.Retries)
		syncers = append(syncers, client)
	}

	if cfg.Sync.SQLitePath != "" {
		mirror, err := remote.OpenSQLiteMirror(context.Background(), cfg.Sync.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite mirror: %w", err)
		}
		syncers = append(syncers, mirror)
		closers = append(closers, mirror.Close)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("failed to close syncer", "err", err)
			}
		}
	}
	return syncers, closeAll, nil
}
