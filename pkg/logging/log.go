package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logFile  *os.File
	logger   = newLogger(io.Discard, log.DebugLevel)
	logMutex sync.Mutex
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
	})
}

// Init routes log output to path, creating the file (and its directory) if needed.
// Until Init is called all output is discarded.
func Init(path, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = newLogger(f, lvl)
	return nil
}

// SetOutput replaces the log destination, mainly for tests.
func SetOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logger = newLogger(w, logger.GetLevel())
}

// Close flushes and closes the log file opened by Init.
func Close() error {
	logMutex.Lock()
	defer logMutex.Unlock()
	logger = newLogger(io.Discard, logger.GetLevel())
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func current() *log.Logger {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logger
}

func LogDebug(format string, args ...interface{}) {
	current().Debug(fmt.Sprintf(format, args...))
}

func LogInfo(format string, args ...interface{}) {
	current().Info(fmt.Sprintf(format, args...))
}

func LogError(format string, args ...interface{}) {
	current().Error(fmt.Sprintf(format, args...))
}

// With logs msg at info level with structured key/value pairs.
func With(msg string, keyvals ...interface{}) {
	current().Info(msg, keyvals...)
}
