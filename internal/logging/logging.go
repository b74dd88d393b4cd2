// Package logging configures zerolog for the fireplan binaries and adapts it
// to the calculation engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level. Human-readable console
// output is used unless json is set.
func New(w io.Writer, level string, json bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if w == nil {
		w = os.Stderr
	}
	if !json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel maps a settings level name onto zerolog, defaulting to info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

// EngineLogger satisfies calculation.Logger on top of a zerolog.Logger.
type EngineLogger struct {
	L zerolog.Logger
}

func (e EngineLogger) Debugf(format string, args ...any) { e.L.Debug().Msgf(format, args...) }
func (e EngineLogger) Infof(format string, args ...any)  { e.L.Info().Msgf(format, args...) }
func (e EngineLogger) Warnf(format string, args ...any)  { e.L.Warn().Msgf(format, args...) }
func (e EngineLogger) Errorf(format string, args ...any) { e.L.Error().Msgf(format, args...) }
