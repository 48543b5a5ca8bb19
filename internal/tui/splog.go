package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"safeupload.dev/safeupload/internal/tui/style"
)

// consoleHandler writes bare messages. Errors go to stderr, everything else
// to stdout. Debug records are dropped unless verbose.
type consoleHandler struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.verbose
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var err error
	switch {
	case record.Level >= slog.LevelError:
		_, err = fmt.Fprintln(h.stderr, style.Error("❌ "+record.Message))
	case record.Level >= slog.LevelWarn:
		_, err = fmt.Fprintln(h.stdout, style.Warning("⚠️  "+record.Message))
	case record.Level == slog.LevelDebug:
		_, err = fmt.Fprintln(h.stdout, style.Muted(record.Message))
	default:
		_, err = fmt.Fprintln(h.stdout, record.Message)
	}
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// LogTimeFormat is the timestamp layout of log file lines
const LogTimeFormat = time.UnixDate

// fileHandler appends one "<timestamp>: <message>" line per record.
// Warnings and errors carry a level prefix in the message part.
type fileHandler struct {
	mu *sync.Mutex
	w  io.Writer
}

func (h *fileHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *fileHandler) Handle(_ context.Context, record slog.Record) error {
	msg := record.Message
	switch {
	case record.Level >= slog.LevelError:
		msg = "ERROR: " + msg
	case record.Level >= slog.LevelWarn:
		msg = "WARN: " + msg
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s: %s\n", record.Time.Format(LogTimeFormat), msg)
	return err
}

func (h *fileHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *fileHandler) WithGroup(_ string) slog.Handler {
	return h
}

// createLumberjackLogger creates a lumberjack logger with configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    100, // megabytes
		MaxBackups: 0,   // keep every rotated file
		MaxAge:     0,   // never expire
		Compress:   false,
	}

	if maxSizeStr := os.Getenv("SAFEUPLOAD_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			config.MaxSize = maxSize
		}
	}

	if maxBackupsStr := os.Getenv("SAFEUPLOAD_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			config.MaxBackups = maxBackups
		}
	}

	if maxAgeStr := os.Getenv("SAFEUPLOAD_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			config.MaxAge = maxAge
		}
	}

	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// SplogOptions configures a Splog
type SplogOptions struct {
	// LogFile receives every record. Empty disables file logging.
	LogFile string
	// Verbose shows debug records on the console
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
}

// NewSplog creates a new splog instance with console-only logging.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(SplogOptions{})
	return splog
}

// NewSplogWithOptions creates a new splog instance with optional file logging
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	splog := &Splog{writer: stdout}

	handlers := []slog.Handler{&consoleHandler{
		stdout:  stdout,
		stderr:  stderr,
		verbose: opts.Verbose || os.Getenv("DEBUG") != "",
	}}

	if opts.LogFile != "" {
		if logDir := filepath.Dir(opts.LogFile); logDir != "." {
			if err := os.MkdirAll(logDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		lumberjackLogger := createLumberjackLogger(opts.LogFile)
		splog.logWriter = lumberjackLogger
		handlers = append(handlers, &fileHandler{mu: &sync.Mutex{}, w: lumberjackLogger})
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// logMessage is a helper to log a message using slog without format string validation
func (s *Splog) logMessage(level slog.Level, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, format, args...)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logMessage(slog.LevelWarn, format, args...)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.logMessage(slog.LevelError, format, args...)
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logMessage(slog.LevelDebug, format, args...)
}

// Page writes console-only output that is not recorded in the log file
func (s *Splog) Page(content string) {
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
