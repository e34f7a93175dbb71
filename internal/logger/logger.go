// Package logger builds the application logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file created inside the log directory.
const FileName = "weekendly.log"

// Options configures the logger.
type Options struct {
	Debug bool
	Level string // parsed with log.ParseLevel; empty means warn
	Dir   string // empty disables the file writer
}

// Logger wraps a charm logger and the rotating file it writes to.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to a rotating file in opts.Dir.
// In debug mode it also writes to stderr at debug level.
func New(opts Options) (*Logger, error) {
	level := log.WarnLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	var (
		writers []io.Writer
		file    *lumberjack.Logger
	)
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, err
		}
		file = &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, FileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, file)
	}
	if opts.Debug {
		writers = append(writers, os.Stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "weekendly",
	})
	return &Logger{Logger: l, file: file}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.NewWithOptions(io.Discard, log.Options{})}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
