package link

import (
	"io"
	"net"
	"sync"
	"time"

	errs "pdlink/internal/errors"
	"pdlink/internal/logger"
	"pdlink/internal/metrics"
	"pdlink/internal/queue"
)

// asyncTransport decouples the caller from the socket with two
// unbounded FIFO queues and two background workers: the outbound worker
// drains the send queue onto the socket, the inbound worker reads
// fixed-size chunks off the socket into the receive queue.
//
// send is therefore non-blocking and may be called before start; queued
// payloads are transmitted once the connection and workers are up.
type asyncTransport struct {
	outbound *queue.Queue
	inbound  *queue.Queue

	chunkSize   int
	drainWait   time.Duration
	readTimeout time.Duration

	exit     chan struct{}
	exitOnce sync.Once
	done     chan struct{}

	mx  *metrics.Collector
	log *logger.Logger

	// onPeerClose is invoked once when the inbound worker observes
	// end-of-stream from the peer.
	onPeerClose func()

	mu   sync.Mutex
	conn net.Conn
}

type asyncConfig struct {
	chunkSize   int
	drainWait   time.Duration
	readTimeout time.Duration
}

func newAsyncTransport(cfg asyncConfig, mx *metrics.Collector, log *logger.Logger, onPeerClose func()) *asyncTransport {
	t := &asyncTransport{
		outbound:    queue.New(),
		inbound:     queue.New(),
		chunkSize:   cfg.chunkSize,
		drainWait:   cfg.drainWait,
		readTimeout: cfg.readTimeout,
		exit:        make(chan struct{}),
		done:        make(chan struct{}),
		mx:          mx,
		log:         log,
		onPeerClose: onPeerClose,
	}
	mx.SetQueueGauges(t.outbound.Len, t.inbound.Len)
	return t
}

// start launches exactly one outbound and one inbound worker on the
// established connection.
func (t *asyncTransport) start(conn net.Conn) {
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		t.outboundLoop(conn)
	}()
	go func() {
		defer wg.Done()
		t.inboundLoop(conn)
	}()
	go func() {
		wg.Wait()
		close(t.done)
	}()
}

// send enqueues the payload and returns immediately. The payload is
// retained as-is; callers must not modify it afterwards.
func (t *asyncTransport) send(payload []byte) error {
	t.outbound.Push(payload)
	return nil
}

func (t *asyncTransport) receive() ([]byte, bool) {
	return t.inbound.TryPop()
}

func (t *asyncTransport) receiveWait(d time.Duration) ([]byte, bool) {
	return t.inbound.PopWait(d)
}

// stop signals both workers to finish. Closing the socket (the
// connection manager's job) is what actually unblocks a pending read.
func (t *asyncTransport) stop() {
	t.exitOnce.Do(func() { close(t.exit) })
}

// wait blocks until both workers have exited or d has elapsed.
func (t *asyncTransport) wait(d time.Duration) bool {
	t.mu.Lock()
	started := t.conn != nil
	t.mu.Unlock()
	if !started {
		return true
	}
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

// ── workers ──────────────────────────────────────────────────────────

// outboundLoop pops payloads in FIFO order and writes each in full to
// the socket. A failed or zero-length write is fatal for the worker;
// it stops transmitting and leaves recovery to the caller.
func (t *asyncTransport) outboundLoop(conn net.Conn) {
	for {
		select {
		case <-t.exit:
			return
		default:
		}

		payload, ok := t.outbound.PopWait(t.drainWait)
		if !ok {
			continue
		}

		if err := writeFull(conn, payload); err != nil {
			t.log.Debug().Err(err).Msg("outbound worker stopping after write failure")
			t.mx.RecordError("async write failed")
			t.mx.SendDropped()
			return
		}
		t.mx.BytesSent(int64(len(payload)))
	}
}

// inboundLoop reads chunks of up to chunkSize bytes and pushes each
// non-empty chunk verbatim onto the inbound queue. Read timeouts are
// benign; end-of-stream or any other read error ends the worker.
func (t *asyncTransport) inboundLoop(conn net.Conn) {
	buf := make([]byte, t.chunkSize)
	for {
		select {
		case <-t.exit:
			return
		default:
		}

		if t.readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(t.readTimeout))
		}

		n, err := conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			t.inbound.Push(chunk)
			t.mx.BytesReceived(int64(n))
		}
		if err != nil {
			var ne net.Error
			if errs.As(err, &ne) && ne.Timeout() {
				continue
			}
			if errs.Is(err, io.EOF) {
				t.log.Debug().Msg("inbound worker: peer closed connection")
				if t.onPeerClose != nil {
					t.onPeerClose()
				}
			} else if !errs.Is(err, net.ErrClosed) {
				t.log.Debug().Err(err).Msg("inbound worker stopping after read failure")
				t.mx.RecordError("async read failed")
			}
			return
		}
	}
}

// writeFull writes all of payload, looping over short writes. A write
// that makes no progress without an error is reported as one.
func writeFull(conn net.Conn, payload []byte) error {
	for len(payload) > 0 {
		n, err := conn.Write(payload)
		if err != nil {
			return err
		}
		if n == 0 {
			return errs.ErrBrokenConnection
		}
		payload = payload[n:]
	}
	return nil
}
