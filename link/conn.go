package link

import (
	"context"
	"net"
	"sync"
	"time"

	errs "pdlink/internal/errors"
	"pdlink/internal/logger"
)

// connManager owns the one TCP socket of a Client: it establishes the
// connection, tracks connected state, and tears the socket down on
// close. The transition to closed is terminal.
type connManager struct {
	endpoint    Endpoint
	dialTimeout time.Duration
	log         *logger.Logger

	mu        sync.Mutex
	conn      net.Conn
	connected bool
	closed    bool
}

func newConnManager(endpoint Endpoint, dialTimeout time.Duration, log *logger.Logger) *connManager {
	return &connManager{
		endpoint:    endpoint,
		dialTimeout: dialTimeout,
		log:         log,
	}
}

// dial opens a blocking-mode stream socket to the endpoint. On failure
// the manager stays unconnected and the error carries the operation and
// address context.
func (m *connManager) dial(ctx context.Context) (net.Conn, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, errs.ErrClosed
	}
	if m.connected {
		m.mu.Unlock()
		return nil, errs.New("already connected")
	}
	m.mu.Unlock()

	addr := m.endpoint.Addr()
	d := net.Dialer{Timeout: m.dialTimeout}

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errs.Wrap("dial", addr, err)
	}

	m.mu.Lock()
	if m.closed {
		// Lost the race with close; give the socket back.
		m.mu.Unlock()
		conn.Close()
		return nil, errs.ErrClosed
	}
	m.conn = conn
	m.connected = true
	m.mu.Unlock()

	m.log.Debug().Str("addr", addr).
		Str("local", conn.LocalAddr().String()).
		Msg("connected")
	return conn, nil
}

// isConnected reports whether dial succeeded and neither close nor a
// peer-initiated shutdown has happened since.
func (m *connManager) isConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// markDisconnected records a peer-initiated close observed by a reader.
// The socket itself is only released by close.
func (m *connManager) markDisconnected() {
	m.mu.Lock()
	was := m.connected
	m.connected = false
	m.mu.Unlock()
	if was {
		m.log.Debug().Str("addr", m.endpoint.Addr()).Msg("peer closed connection")
	}
}

// close releases the socket and transitions to the terminal closed
// state. Closing the socket also unblocks any read pending in another
// goroutine. Safe to call repeatedly and before dial ever succeeded.
func (m *connManager) close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.connected = false
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}
