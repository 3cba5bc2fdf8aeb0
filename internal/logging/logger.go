// Package logging provides leveled logging for beacon.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level is the minimum severity a message needs to be written.
type Level int

// Log levels, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag written in front of messages of this level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger wraps the standard logger with an optional file output
type Logger struct {
	*log.Logger
	file  *os.File
	level Level
	mu    sync.Mutex
}

var defaultLogger = newLogger(os.Stdout)

func newLogger(w io.Writer) *Logger {
	return &Logger{
		Logger: log.New(w, "", log.LstdFlags),
		level:  levelFromEnv(),
	}
}

func levelFromEnv() Level {
	if os.Getenv("DEBUG") == "true" {
		return LevelDebug
	}
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ReloadLevel re-reads DEBUG and LOG_LEVEL, e.g. after a .env file was loaded
func ReloadLevel() {
	SetLevel(levelFromEnv())
}

// Initialize adds a file writer under logDir next to stdout
func Initialize(logDir string) error {
	ReloadLevel()

	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if defaultLogger.file != nil {
		return nil
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "beacon.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path is operator supplied
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	defaultLogger.file = file
	defaultLogger.SetOutput(io.MultiWriter(os.Stdout, file))
	defaultLogger.SetFlags(log.LstdFlags | log.Lshortfile)

	defaultLogger.Logger.Printf("[INFO] Logging initialized: %s", logPath)
	return nil
}

// Close closes the log file, if any, and goes back to stdout only
func Close() error {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if defaultLogger.file == nil {
		return nil
	}
	err := defaultLogger.file.Close()
	defaultLogger.file = nil
	defaultLogger.SetOutput(os.Stdout)
	defaultLogger.SetFlags(log.LstdFlags)
	return err
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.Logger.SetOutput(w)
}

// SetLevel changes the minimum level and returns the previous one.
func SetLevel(l Level) Level {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	prev := defaultLogger.level
	defaultLogger.level = l
	return prev
}

// GetLevel returns the current minimum level
func GetLevel() Level {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	return defaultLogger.level
}

func logAt(l Level, format string, v ...interface{}) {
	if l < GetLevel() {
		return
	}
	// calldepth 3 reports the caller of Info/Warning/...
	_ = defaultLogger.Output(3, fmt.Sprintf("["+l.String()+"] "+format, v...))
}

// Printf logs a formatted message without a level tag
func Printf(format string, v ...interface{}) {
	_ = defaultLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	logAt(LevelError, format, v...)
}

// Warning logs a warning message
func Warning(format string, v ...interface{}) {
	logAt(LevelWarn, format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	logAt(LevelInfo, format, v...)
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	logAt(LevelDebug, format, v...)
}
