package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelMapping(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, levelFor(c.verbosity), "verbosity %d", c.verbosity)
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, 0)

	l.Info().Msg("should not appear")
	assert.Empty(t, buf.String())

	l.Warn().Msg("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestVerboseEmitsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, 2)

	l.Debug().Str("addr", "localhost:3001").Msg("connecting")
	assert.Contains(t, buf.String(), "connecting")
	assert.Contains(t, buf.String(), "localhost:3001")
}

func TestChildInheritsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, 1).Child("session", "abc123")

	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "abc123")
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	// Must not panic and must not write anywhere.
	l.Error().Msg("dropped")
}
