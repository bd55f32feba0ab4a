package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultHost is where a locally running Pure Data instance lives.
	DefaultHost = "localhost"

	// DefaultPort matches the netreceive port in the stock patch.
	DefaultPort = 3001

	// DefaultDialTimeout bounds the initial TCP connect.
	DefaultDialTimeout = 10 * time.Second

	// DefaultChunkSize is the async inbound worker's per-read limit.
	DefaultChunkSize = 1024

	// DefaultSyncReadSize is the single-read limit in sync mode.
	DefaultSyncReadSize = 8192

	// DefaultDrainWait is how long the outbound worker waits on an
	// empty queue before re-checking for shutdown.
	DefaultDrainWait = 50 * time.Millisecond

	// DefaultPollInterval is the CLI's cadence for polling replies.
	DefaultPollInterval = 100 * time.Millisecond
)
