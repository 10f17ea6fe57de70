// Package main is the entry point for the keypad terminal frontend.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mfagan/keypad/internal/app"
	"github.com/mfagan/keypad/internal/backend"
	"github.com/mfagan/keypad/internal/config"
	"github.com/mfagan/keypad/internal/frontend/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logPath     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&logPath, "log", "", "Write logs to this file (default: discard)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("keypad %s (%s)\n", version, commit)
		return 0
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctrl, err := app.New(&echoBackend{}, nil, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer ctrl.Close()

	screen, err := term.NewScreen(ctrl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	if watcher, werr := config.Watch(configPath, func(cfg config.Config) {
		if aerr := ctrl.ApplyConfig(cfg); aerr != nil {
			screen.Show("Error: " + aerr.Error())
			return
		}
		screen.Show("Configuration reloaded")
	}); werr == nil {
		defer watcher.Close()
	} else {
		log.Printf("config watcher unavailable: %v", werr)
	}

	if err := screen.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keypad.toml"
	}
	return dir + "/keypad/keypad.toml"
}

// echoBackend is the placeholder engine used when no computation backend
// is attached: it accepts every command and logs it. The real engine
// speaks the backend.Backend contract out of process.
type echoBackend struct{}

func (echoBackend) Invoke(_ context.Context, name string, args []string, opts backend.Options) error {
	log.Printf("invoke %s %s %+v", name, strings.Join(args, " "), opts)
	return nil
}

func (echoBackend) Validate(context.Context, string, backend.ValidatorKind) (bool, error) {
	return true, nil
}

func (echoBackend) ValidateStackSize(context.Context, int) (bool, error) {
	return true, nil
}

func (echoBackend) QueryStack(context.Context, int, backend.QueryKind) (bool, error) {
	return false, nil
}

func (echoBackend) EditableElem(context.Context, int) (string, error) {
	return "", nil
}

func (echoBackend) Undo(_ context.Context, dir backend.UndoDirection) error {
	log.Printf("%s", dir)
	return nil
}
