package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger represents a logger instance
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a text logger writing to w at the given level name.
// An unknown level falls back to info.
func NewLogger(w io.Writer, level string) Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	SetLevel(logger, level)
	return logger
}

// SetLevel sets the level of logger by name. An unknown level selects info.
func SetLevel(logger Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

// OpenFile opens (or creates) path for appending, creating its directory
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Deferred is a log output that holds entries in memory until Attach names
// the real destination. It lets logging start before the log file is known.
type Deferred struct {
	mu  sync.Mutex
	buf bytes.Buffer
	w   io.Writer
}

// NewDeferred creates an unattached output
func NewDeferred() *Deferred {
	return &Deferred{}
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.w != nil {
		return d.w.Write(p)
	}
	return d.buf.Write(p)
}

// Attach flushes the held entries to w and sends later writes straight to it
func (d *Deferred) Attach(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w = w
	_, err := d.buf.WriteTo(w)
	return err
}

// Discard returns a logger that drops everything
func Discard() Logger {
	return NewLogger(io.Discard, "panic")
}
