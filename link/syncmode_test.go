package link

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "pdlink/internal/errors"
	"pdlink/internal/logger"
)

func TestSyncBrokenWriteDetection(t *testing.T) {
	// A peer that closes the moment it accepts.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	c := New(testConfig(port, true), logger.Nop())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	// The first write after the peer's close may still be absorbed by
	// the kernel; the broken pipe surfaces within a few attempts.
	var sendErr error
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if sendErr = c.Send([]byte("clear;\n")); sendErr != nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.Error(t, sendErr, "send never failed against a closed peer")
	assert.ErrorIs(t, sendErr, errs.ErrBrokenConnection)
}

func TestSyncReceiveTimeoutIsNoData(t *testing.T) {
	// A silent peer: accept and hold.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		time.Sleep(5 * time.Second)
		conn.Close()
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	cfg := testConfig(port, true)
	cfg.ReadTimeout = 100 * time.Millisecond

	c := New(cfg, logger.Nop())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	got, ok := c.Receive()
	assert.False(t, ok)
	assert.Empty(t, got)

	// A timed-out read is benign, never an error in the stats.
	assert.Equal(t, int64(1), c.Stats().NoDataPolls)
}

func TestSyncSendBeforeStart(t *testing.T) {
	c := New(testConfig(1, true), logger.Nop())

	err := c.Send([]byte("too early"))
	assert.ErrorIs(t, err, errs.ErrNotConnected)
}

func TestSyncReceiveBeforeStart(t *testing.T) {
	c := New(testConfig(1, true), logger.Nop())

	got, ok := c.Receive()
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestSyncReceiveWaitBoundsTheRead(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		time.Sleep(5 * time.Second)
		conn.Close()
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	c := New(testConfig(port, true), logger.Nop())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	start := time.Now()
	_, ok := c.ReceiveWait(150 * time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}
