package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/doctree/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// Logger writes component-tagged debug lines to a configured sink. Loggers
// are handed to the converter and comment resolver explicitly instead of
// being reached through package globals, so tests can capture output.
type Logger struct {
	component string
	mu        sync.Mutex
	out       io.Writer
	file      *os.File
	enabled   bool
}

// NewLogger creates a logger for a component, writing to w. A nil writer
// disables output entirely. Whether to create a sink at all is the caller's
// decision; see Enabled for the build-flag/environment gate the CLI uses.
func NewLogger(component string, w io.Writer) *Logger {
	return &Logger{
		component: component,
		out:       w,
		enabled:   w != nil,
	}
}

// Discard returns a logger that drops everything. Useful as the default
// until a real sink is configured.
func Discard(component string) *Logger {
	return &Logger{component: component}
}

// NewFileLogger creates a logger writing to a timestamped file under the OS
// temp directory. Call Close when done.
func NewFileLogger(component string) (*Logger, string, error) {
	logDir := filepath.Join(os.TempDir(), "doctree-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	return &Logger{
		component: component,
		out:       file,
		file:      file,
		enabled:   true,
	}, logPath, nil
}

// Close closes the underlying log file if this logger owns one.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.out = nil
		l.enabled = false
		return err
	}
	return nil
}

// Component derives a logger sharing this logger's sink under a different
// component tag.
func (l *Logger) Component(name string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		component: name,
		out:       l.out,
		enabled:   l.enabled,
	}
}

// Printf writes one formatted debug line when output is enabled.
func (l *Logger) Printf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.out == nil {
		return
	}
	fmt.Fprintf(l.out, "[DEBUG:%s] "+format+"\n", append([]interface{}{l.component}, args...)...)
}

// Error writes one error line; unlike Printf it is not gated on debug mode,
// only on having a sink.
func (l *Logger) Error(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return
	}
	fmt.Fprintf(l.out, "[ERROR:%s] "+format+"\n", append([]interface{}{l.component}, args...)...)
}

// Enabled checks the build flag and the DEBUG environment override.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	return os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
}
