package logutil

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName = "screen_region_shot.log"
	maxSizeMB   = 10
	maxArchives = 3
)

var (
	mu   sync.Mutex
	file *lumberjack.Logger
)

// Setup routes diagnostics. stdout is reserved for status lines, so logs are
// discarded unless verbose (stderr) or file logging is enabled. File logging
// rotates at 10MB and keeps 3 archives in dir.
func Setup(verbose, enableFileLogging bool, dir string) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()

	var writers []io.Writer
	if verbose {
		writers = append(writers, os.Stderr)
	}
	if enableFileLogging {
		file = newFileLogger(dir)
		writers = append(writers, file)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Level:           log.DebugLevel,
	})
	log.SetDefault(logger)
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func newFileLogger(dir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxArchives,
	}
}
