package logging

import (
	"bytes"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ calculation.Logger = EngineLogger{}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"WARNING": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestEngineLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn", true)
	require.NoError(t, err)

	el := EngineLogger{L: l}
	el.Debugf("hidden %d", 1)
	el.Infof("hidden %d", 2)
	el.Warnf("allocation adds up to %s%%", "95")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "allocation adds up to 95%")
}

func TestEngineLogger_WithEngine(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info", true)
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(EngineLogger{L: l})

	p := domain.DefaultInputParameters()
	p.Mode = domain.ModeSplit
	p.Split.SavingsPct = decimal.NewFromInt(5)
	engine.Run(p)
	assert.Contains(t, buf.String(), "expected 100%")
}
