package util

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAddr(t *testing.T) {
	assert.Equal(t, "localhost:3001", FormatAddr("localhost", 3001))
	assert.Equal(t, "127.0.0.1:9000", FormatAddr("127.0.0.1", 9000))
	// IPv6 hosts must come out bracketed.
	assert.Equal(t, "[::1]:80", FormatAddr("::1", 80))
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	require.NoError(t, err)
	require.Greater(t, port, 0)
	require.LessOrEqual(t, port, 65535)

	// The port should be immediately bindable.
	ln, err := net.Listen("tcp", FormatAddr("127.0.0.1", port))
	require.NoError(t, err)
	ln.Close()
}
