package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"trace":   zerolog.TraceLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nivel %q", in)
	}
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zl: zerolog.New(&buf).With().Str("service", "manufactura").Logger()}

	base.Component("transfers").Info().Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "transfers", line["component"])
	assert.Equal(t, "manufactura", line["service"])
	assert.Equal(t, "hola", line["message"])
}

func TestNop_Discards(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("nada") })
}
