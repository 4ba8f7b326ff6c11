// Package logger builds the zerolog loggers used by the CLI and the client.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// FieldComponent tags log lines with the subsystem that wrote them.
const FieldComponent = "component"

// Config contains logging configuration.
type Config struct {
	Level   string
	Format  string
	Output  io.Writer
	NoColor bool
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == nil {
		c.Output = os.Stderr
	}
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to
// info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}

// New creates a logger from cfg. The level is applied to the logger itself so
// several loggers with different levels can coexist in tests.
func New(cfg Config) zerolog.Logger {
	cfg.ApplyDefaults()

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case FormatJSON:
		zl = zerolog.New(cfg.Output)
	default:
		zl = zerolog.New(consoleWriter(cfg))
	}

	return zl.Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(FieldComponent, name).Logger()
}

func consoleWriter(cfg Config) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        cfg.Output,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			switch lvl {
			case "TRACE":
				lvl = "TRC"
			case "DEBUG":
				lvl = "DBG"
			case "INFO":
				lvl = "INF"
			case "WARN":
				lvl = "WRN"
			case "ERROR":
				lvl = "ERR"
			case "FATAL":
				lvl = "FTL"
			}
			return "[" + lvl + "]"
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
	}
}
