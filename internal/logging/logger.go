// ABOUTME: Logger construction for the CLI and the MCP server.
// ABOUTME: Writes leveled key/value logs to stderr, a rotating file, or both.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params configures a logger.
type Params struct {
	Level string
	// File enables a rotating log file at this path.
	File string
	// ToStderr also writes to stderr when File is set.
	ToStderr bool
	Prefix   string
}

// New builds a logger and returns a closer for the rotating file, if any.
func New(p Params) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(p.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if p.File != "" {
		if !strings.HasSuffix(p.File, ".log") {
			p.File += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   p.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			Compress:   true,
		}
		closer = rotating
		out = rotating
		if p.ToStderr {
			out = io.MultiWriter(os.Stderr, rotating)
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          p.Prefix,
		ReportTimestamp: p.File != "",
	})
	return logger, closer, nil
}

// ParseLevel maps a level name to a log.Level. An empty name means info.
func ParseLevel(level string) (log.Level, error) {
	if level == "" {
		return log.InfoLevel, nil
	}
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return l, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
