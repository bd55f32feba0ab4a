package link

import (
	"net"
	"sync"
	"time"

	errs "pdlink/internal/errors"
	"pdlink/internal/logger"
	"pdlink/internal/metrics"
)

// syncTransport is the direct blocking data path: one OS write per
// send, one OS read per receive, all on the calling goroutine.
type syncTransport struct {
	readSize    int
	readTimeout time.Duration // 0 = block indefinitely
	mx          *metrics.Collector
	log         *logger.Logger

	mu   sync.Mutex
	conn net.Conn
}

func newSyncTransport(cfg syncConfig, mx *metrics.Collector, log *logger.Logger) *syncTransport {
	return &syncTransport{
		readSize:    cfg.readSize,
		readTimeout: cfg.readTimeout,
		mx:          mx,
		log:         log,
	}
}

type syncConfig struct {
	readSize    int
	readTimeout time.Duration
}

func (t *syncTransport) start(conn net.Conn) {
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
}

// send writes the full payload, blocking the caller for the duration of
// the OS call. A write the OS refuses outright means the peer has gone
// away and surfaces as ErrBrokenConnection.
func (t *syncTransport) send(payload []byte) error {
	conn := t.current()
	if conn == nil {
		return errs.ErrNotConnected
	}

	n, err := conn.Write(payload)
	if err != nil || n == 0 {
		if err != nil {
			t.log.Debug().Err(err).Msg("sync write failed")
		}
		t.mx.RecordError("sync write failed")
		return errs.ErrBrokenConnection
	}
	t.mx.BytesSent(int64(n))
	return nil
}

// receive performs one blocking read of up to readSize bytes. Timeout,
// peer close, and every other read failure all collapse into the same
// no-data result; only the debug log tells them apart.
func (t *syncTransport) receive() ([]byte, bool) {
	return t.read(t.readTimeout)
}

func (t *syncTransport) receiveWait(d time.Duration) ([]byte, bool) {
	return t.read(d)
}

func (t *syncTransport) read(timeout time.Duration) ([]byte, bool) {
	conn := t.current()
	if conn == nil {
		return nil, false
	}

	if timeout > 0 {
		conn.SetReadDeadline(time.Now().Add(timeout))
	} else {
		conn.SetReadDeadline(time.Time{})
	}

	buf := make([]byte, t.readSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		if err != nil {
			t.log.Debug().Err(err).Msg("sync read returned no data")
		}
		return nil, false
	}
	t.mx.BytesReceived(int64(n))
	return buf[:n], true
}

// stop is a no-op: there are no workers, and the connection manager
// owns closing the socket.
func (t *syncTransport) stop() {}

func (t *syncTransport) wait(time.Duration) bool { return true }

func (t *syncTransport) current() net.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}
