package runtimeinit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"screen-region-shot/src/clipboard"
	"screen-region-shot/src/config"
	"screen-region-shot/src/logutil"
)

type Options struct {
	LoadOptions config.LoadOptions
	Verbose     bool
	// SetupLogging defaults to logutil.Setup with the log file beside the
	// executable.
	SetupLogging func(verbose, enableFileLogging bool)
	// InitClipboard defaults to clipboard.Init.
	InitClipboard func() error
}

// Bootstrap loads configuration, routes logging and prepares optional
// subsystems.
func Bootstrap(opts Options) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	setup := opts.SetupLogging
	if setup == nil {
		setup = func(verbose, enableFileLogging bool) {
			logutil.Setup(verbose, enableFileLogging, logDir())
		}
	}
	setup(opts.Verbose, cfg.EnableFileLogging)

	if cfg.CopyToClipboard {
		initClipboard := opts.InitClipboard
		if initClipboard == nil {
			initClipboard = clipboard.Init
		}
		if err := initClipboard(); err != nil {
			return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	}

	log.Info("configuration loaded",
		"output", cfg.OutputFile,
		"min_size", cfg.MinSelectionSize,
		"poll", cfg.PollInterval,
		"opacity", cfg.OverlayOpacity,
		"cancel_hotkey", cfg.CancelHotkey,
		"clipboard", cfg.CopyToClipboard,
		"stdin", cfg.ListenStdin,
	)
	return cfg, nil
}

func logDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	return "."
}
