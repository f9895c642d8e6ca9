// Package logger holds the package-wide structured logger. It discards all
// output until Init is called, so library users see nothing unless they opt in.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It's initialized to discard all output by default.
var L *slog.Logger = discard()

const (
	logPrefix     = "appxkit-"
	logSuffix     = ".log"
	retentionDays = 30
)

// logFile is the file opened by Init when logging to LogDir.
var logFile *os.File

// Options configures the logger initialization.
type Options struct {
	Enabled bool         // If false, all logging is discarded
	Handler slog.Handler // Used as-is when set; LogDir and Level are ignored
	LogDir  string       // Directory for daily JSON log files when Handler is nil
	Level   slog.Level   // Minimum log level for LogDir output. Default: LevelInfo
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init configures logging. A previous log file opened by Init is closed.
func Init(opts Options) error {
	_ = Shutdown()

	if !opts.Enabled {
		L = discard()
		return nil
	}
	if opts.Handler != nil {
		L = slog.New(opts.Handler)
		return nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logDir = filepath.Join(home, ".appxkit", "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	// Clean up old logs (best-effort, ignore errors)
	cleanOldLogs(logDir, time.Now())

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = f

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// Shutdown restores the discarding logger and closes any log file.
func Shutdown() error {
	L = discard()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// Parse date from filename: appxkit-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}
