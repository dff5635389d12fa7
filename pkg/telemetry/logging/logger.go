package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the log output encoding.
type Format string

const (
	// FormatJSON emits one JSON object per line, for log shippers.
	FormatJSON Format = "json"
	// FormatText emits logfmt-style key=value lines.
	FormatText Format = "text"
	// FormatConsole emits colorized human-readable lines for terminals.
	FormatConsole Format = "console"
)

// Options configures logger construction.
type Options struct {
	// Level is the minimum level: "debug", "info", "warn" or "error".
	// Empty means info.
	Level string

	// Format is the output encoding. Empty means console.
	Format string

	// AddSource includes file:line attribution in each record.
	AddSource bool

	// Writer receives the output. Defaults to os.Stderr.
	Writer io.Writer
}

// New builds a slog.Logger from Options.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: opts.AddSource,
		})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: opts.AddSource,
		})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  opts.AddSource,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.New(handler), nil
}

// ParseLevel maps a level name to the slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func parseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console", "":
		return FormatConsole, nil
	default:
		return FormatConsole, fmt.Errorf("unknown log format %q", s)
	}
}
