package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvFileEnvVar names an alternative .env file when none sits next to
	// the executable.
	EnvFileEnvVar = "SCREEN_REGION_SHOT"

	DefaultOutputFile   = "oppy_screen_shot.png"
	DefaultMinSize      = 10
	DefaultPollMs       = 100
	DefaultOpacity      = 0.3
	DefaultCancelHotkey = "Esc"
)

// LoadOptions carry command-line overrides. Zero values leave the
// environment setting in place.
type LoadOptions struct {
	OutputFileOverride   string
	MinSizeOverride      int
	PollIntervalOverride time.Duration
	OpacityOverride      float64
	CancelHotkeyOverride *string
	ClipboardOverride    *bool
	ListenStdinOverride  *bool
}

type Config struct {
	OutputFile        string
	MinSelectionSize  int
	PollInterval      time.Duration
	OverlayOpacity    float64
	CancelHotkey      string
	CopyToClipboard   bool
	ListenStdin       bool
	EnableFileLogging bool
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Sources in priority order:
	// 1) .env in the executable directory
	// 2) otherwise the file named by SCREEN_REGION_SHOT
	// Variables already set in the environment win over both.
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		OutputFile:        getEnvWithDefault("OUTPUT_FILE", DefaultOutputFile),
		MinSelectionSize:  getPositiveInt("MIN_SELECTION_SIZE", DefaultMinSize),
		PollInterval:      time.Duration(getPositiveInt("MONITOR_POLL_MS", DefaultPollMs)) * time.Millisecond,
		OverlayOpacity:    resolveOpacity(os.Getenv("OVERLAY_OPACITY")),
		CancelHotkey:      DefaultCancelHotkey,
		CopyToClipboard:   getBool("COPY_TO_CLIPBOARD", false),
		ListenStdin:       getBool("LISTEN_STDIN", true),
		EnableFileLogging: getBool("ENABLE_FILE_LOGGING", false),
	}
	if v, ok := os.LookupEnv("CANCEL_HOTKEY"); ok {
		cfg.CancelHotkey = strings.TrimSpace(v)
	}

	applyOverrides(cfg, opts)
	return cfg, nil
}

func applyOverrides(cfg *Config, opts LoadOptions) {
	if v := strings.TrimSpace(opts.OutputFileOverride); v != "" {
		cfg.OutputFile = v
	}
	if opts.MinSizeOverride > 0 {
		cfg.MinSelectionSize = opts.MinSizeOverride
	}
	if opts.PollIntervalOverride > 0 {
		cfg.PollInterval = opts.PollIntervalOverride
	}
	if opts.OpacityOverride > 0 && opts.OpacityOverride <= 1 {
		cfg.OverlayOpacity = opts.OpacityOverride
	}
	if opts.CancelHotkeyOverride != nil {
		cfg.CancelHotkey = strings.TrimSpace(*opts.CancelHotkeyOverride)
	}
	if opts.ClipboardOverride != nil {
		cfg.CopyToClipboard = *opts.ClipboardOverride
	}
	if opts.ListenStdinOverride != nil {
		cfg.ListenStdin = *opts.ListenStdinOverride
	}
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// resolveOpacity accepts values in (0, 1]; anything else means the default.
func resolveOpacity(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 || f > 1 {
		return DefaultOpacity
	}
	return f
}
