package cmd

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdlink/config"
	"pdlink/internal/logger"
	"pdlink/link"
)

func TestExecuteVersion(t *testing.T) {
	require.NoError(t, Execute(context.Background(), []string{"--version"}))
}

func TestExecuteHelp(t *testing.T) {
	require.NoError(t, Execute(context.Background(), []string{"--help"}))
}

func TestExecuteDryRun(t *testing.T) {
	err := Execute(context.Background(), []string{
		"--dry-run", "localhost", "3001",
	})
	require.NoError(t, err)
}

func TestExecuteDryRunInvalidPort(t *testing.T) {
	err := Execute(context.Background(), []string{
		"--dry-run", "localhost", "99999",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestExecuteInvalidFlag(t *testing.T) {
	assert.Error(t, Execute(context.Background(), []string{"--nonexistent-flag"}))
}

func TestExecuteTooManyArgs(t *testing.T) {
	err := Execute(context.Background(), []string{
		"--dry-run", "host", "3001", "extra",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many arguments")
}

// TestRelayRoundTrip pipes two lines through a real client against a
// local echo server and checks both come back.
func TestRelayRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(conn, conn) //nolint:errcheck
	}()

	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	cfg.DialTimeout = 2 * time.Second
	cfg.DrainWait = 10 * time.Millisecond
	cfg.PollInterval = 20 * time.Millisecond

	cli := link.New(cfg, logger.Nop())
	require.NoError(t, cli.Start(context.Background()))
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	in := strings.NewReader("osc~ 440;\nclear;\n")
	require.NoError(t, relay(ctx, cli, cfg, in, &out))

	assert.Equal(t, "osc~ 440;\nclear;\n", out.String())
}
