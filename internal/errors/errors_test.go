package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkErrorMessage(t *testing.T) {
	err := Wrap("dial", "localhost:3001", io.ErrUnexpectedEOF)
	assert.Equal(t, "dial localhost:3001: unexpected EOF", err.Error())
}

func TestNetworkErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap("dial", "127.0.0.1:9", inner)

	require.ErrorIs(t, err, inner)

	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "dial", ne.Op)
	assert.Equal(t, "127.0.0.1:9", ne.Addr)
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrBrokenConnection, ErrNotConnected)
	assert.NotErrorIs(t, ErrBrokenConnection, ErrClosed)
	assert.NotErrorIs(t, ErrNotConnected, ErrClosed)
}

func TestWrappedSentinelSurvivesIs(t *testing.T) {
	err := Wrap("write", "localhost:3001", ErrBrokenConnection)
	assert.True(t, Is(err, ErrBrokenConnection))
}
