package logrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/lumberjack"
)

// Config configures the log rotation behavior
type Config struct {
	// MaxSize is the maximum size in megabytes of the log file before it gets rotated
	MaxSize int `yaml:"max_size"`

	// MaxAge is the maximum number of days to retain old log files
	MaxAge int `yaml:"max_age"`

	// MaxBackups is the maximum number of old log files to retain
	MaxBackups int `yaml:"max_backups"`

	// Compress gzips rotated files
	Compress bool `yaml:"compress"`
}

// DefaultConfig provides default configuration for log rotation
var DefaultConfig = Config{
	MaxSize:    10, // megabytes
	MaxAge:     30, // days
	MaxBackups: 5,
	Compress:   true,
}

// Writer is a rotating log file backed by lumberjack
type Writer struct {
	logger *lumberjack.Logger
	mu     sync.Mutex
}

// Open creates the log directory and returns a rotating writer for filename
func Open(filename string, config Config) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Writer{
		logger: &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    config.MaxSize,
			MaxAge:     config.MaxAge,
			MaxBackups: config.MaxBackups,
			Compress:   config.Compress,
			LocalTime:  false,
		},
	}, nil
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.logger.Write(p)
}

// Close implements io.Closer
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.logger.Close()
}
