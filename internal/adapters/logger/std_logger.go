package logger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/go_fuzzypath/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
	// file is set when the logger owns its output and closes it on Close.
	file *os.File
}

// NewStdLogger creates a new standard logger adapter with default configuration.
func NewStdLogger() (ports.Logger, error) {
	return NewCustomStdLogger(DefaultConfig(os.Stdout))
}

// DefaultConfig returns the logger configuration used by the server and the
// CLI, writing to output.
func DefaultConfig(output io.Writer) l.Config {
	return l.Config{
		Output:      output,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// NewFileStdLogger appends to the file at path, creating it if needed, and
// closes the file when the logger is closed. An empty path logs to stdout.
func NewFileStdLogger(path string, config l.Config) (ports.Logger, error) {
	if path == "" {
		config.Output = os.Stdout
		return NewCustomStdLogger(config)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	config.Output = file

	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &StdLogger{logger: logger, file: file}, nil
}

// Debug logs a debug message.
func (l *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (l *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (l *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (l *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Close flushes the logger, then closes the log file it owns.
func (l *StdLogger) Close() error {
	err := l.logger.Close()
	if l.file != nil {
		err = errors.Join(err, l.file.Close())
	}
	return err
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}
