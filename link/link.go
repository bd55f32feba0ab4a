// Package link implements the dual-mode TCP client that carries
// line-oriented traffic between a caller and a remote Pure Data
// process over one persistent socket.
//
// The package is a byte transport, not a message transport: payloads
// are opaque, no framing is imposed, and one Send does not necessarily
// correspond to one Receive. Message boundaries (newline-terminated
// lines in this system's usage) are the caller's convention.
//
// Architecture layers (bottom → top):
//
//	connManager  →  syncTransport / asyncTransport  →  Client  →  cmd (CLI)
//
// The transport strategy is chosen once at construction; callers of the
// Client facade never see the sync/async branch.
package link

import (
	"net"
	"time"

	"pdlink/util"
)

// Endpoint identifies the remote peer. Immutable after construction.
type Endpoint struct {
	Host string
	Port int
}

// Addr returns the endpoint as a dialable "host:port" string.
func (e Endpoint) Addr() string {
	return util.FormatAddr(e.Host, e.Port)
}

// transport is the mode-specific data path behind the Client facade.
// Exactly one implementation exists per Client, selected at
// construction: syncTransport (direct blocking I/O) or asyncTransport
// (two background workers mediated by queues).
type transport interface {
	// start binds the transport to an established connection and, for
	// the async implementation, launches its workers.
	start(conn net.Conn)

	// send hands one payload to the transport. The async
	// implementation enqueues and returns immediately; the sync
	// implementation blocks for the duration of one OS write.
	send(payload []byte) error

	// receive returns the next inbound payload without blocking
	// beyond, in sync mode, a single OS read. ok is false when
	// nothing was available.
	receive() ([]byte, bool)

	// receiveWait is receive with a bounded wait for data to arrive.
	receiveWait(d time.Duration) ([]byte, bool)

	// stop signals shutdown. It must not block; workers observe the
	// signal cooperatively and exit once the socket is closed out
	// from under any pending read.
	stop()

	// wait blocks until all workers have exited or d has elapsed,
	// reporting true on clean termination. The sync implementation
	// has no workers and returns true immediately.
	wait(d time.Duration) bool
}
