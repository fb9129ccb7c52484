// Package logger wraps charmbracelet/log with a rotating file sink under the
// config directory. Output goes to stderr as well only in debug mode, so the
// TUI is never drawn over.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/tally/internal/constants"
)

const (
	logDirName    = "logs"
	maxSizeMB     = 10
	maxBackups    = 3
	maxAgeDays    = 28
	fileExtension = ".log"
)

// Logger is nil until Init runs; the package functions are no-ops until then.
var Logger *log.Logger

var sink *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// Path returns the active log file, or "" before Init.
func Path() string {
	if sink == nil {
		return ""
	}
	return sink.Filename
}

func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, logDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	_ = Close()
	sink = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+fileExtension),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          constants.AppName,
		Level:           log.WarnLevel,
	}
	var out io.Writer = sink
	if cfg.Debug {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		out = io.MultiWriter(stderr, sink)
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}

	Logger = log.NewWithOptions(out, opts)
	return nil
}

// Close flushes and releases the log file.
func Close() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
