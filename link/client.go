package link

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"pdlink/config"
	errs "pdlink/internal/errors"
	"pdlink/internal/logger"
	"pdlink/internal/metrics"
)

// closeWait bounds how long Close lingers for worker goroutines; they
// exit promptly once the socket is closed out from under them.
const closeWait = time.Second

// Client is the single public surface of the transport. It hides
// whether the configured mode is synchronous (blocking calls) or
// asynchronous (queue-mediated background workers).
//
// Lifecycle: New → Start → Send/Receive → Close. Send and Receive are
// meaningful only between a successful Start and Close, with one
// documented exception: in async mode payloads handed to Send before
// Start are queued and transmitted once the connection is up.
type Client struct {
	endpoint Endpoint
	log      *logger.Logger
	mx       *metrics.Collector

	cm *connManager
	tr transport

	mu      sync.Mutex
	started bool
	closed  bool
}

// New builds a Client for the configured endpoint and mode. The mode is
// fixed for the client's lifetime.
func New(cfg *config.Config, log *logger.Logger) *Client {
	log = log.Child("session", uuid.NewString()[:8])
	mx := metrics.New()

	c := &Client{
		endpoint: Endpoint{Host: cfg.Host, Port: cfg.Port},
		log:      log,
		mx:       mx,
	}
	c.cm = newConnManager(c.endpoint, cfg.DialTimeout, log)

	if cfg.Sync {
		c.tr = newSyncTransport(syncConfig{
			readSize:    cfg.SyncReadSize,
			readTimeout: cfg.ReadTimeout,
		}, mx, log)
	} else {
		c.tr = newAsyncTransport(asyncConfig{
			chunkSize:   cfg.ChunkSize,
			drainWait:   cfg.DrainWait,
			readTimeout: cfg.ReadTimeout,
		}, mx, log, c.cm.markDisconnected)
	}
	return c
}

// Start connects to the endpoint and, in async mode, launches the two
// transport workers. On failure the client stays unstarted and inert;
// callers should check IsConnected before relying on Send/Receive.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errs.ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return errs.New("client already started")
	}
	c.mu.Unlock()

	conn, err := c.cm.dial(ctx)
	if err != nil {
		c.mx.RecordError(err.Error())
		c.log.Error().Err(err).Msg("start failed")
		return err
	}

	c.tr.start(conn)

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	c.log.Info().Str("addr", c.endpoint.Addr()).Msg("client started")
	return nil
}

// Send hands payload to the transport. Async mode enqueues and returns
// immediately; sync mode blocks for one OS write and reports
// ErrBrokenConnection when the peer has gone away. After Close, the
// payload is dropped and ErrClosed returned.
//
// The transport retains payload; callers must not modify it afterwards.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		c.mx.SendDropped()
		return errs.ErrClosed
	}

	if err := c.tr.send(payload); err != nil {
		return err
	}
	c.mx.SendAccepted()
	return nil
}

// Receive returns the next inbound payload decoded as UTF-8 text.
// ok is false when nothing is available — an empty queue, a read
// timeout, invalid UTF-8, and a closed peer are indistinguishable here.
// Async mode never blocks; sync mode blocks for at most one OS read.
func (c *Client) Receive() (string, bool) {
	return c.decode(c.tr.receive())
}

// ReceiveWait is Receive with a bounded wait for data: async mode waits
// on the inbound queue, sync mode applies d as the read deadline.
func (c *Client) ReceiveWait(d time.Duration) (string, bool) {
	return c.decode(c.tr.receiveWait(d))
}

// IsConnected reports whether Start succeeded and the connection has
// not been closed since, by either side.
func (c *Client) IsConnected() bool {
	return c.cm.isConnected()
}

// Close shuts the client down: workers observe the exit signal, the
// socket is closed (unblocking any pending read), and the connection
// state becomes terminally closed. Idempotent; waits at most closeWait
// for worker termination.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.tr.stop()
	err := c.cm.close()

	if !c.tr.wait(closeWait) {
		c.log.Warn().Msg("transport workers did not terminate in time")
	}

	c.log.Info().Msg("client closed")
	return err
}

// Stats returns a point-in-time snapshot of transport statistics.
func (c *Client) Stats() metrics.Snapshot {
	return c.mx.Snapshot()
}

func (c *Client) decode(payload []byte, ok bool) (string, bool) {
	if !ok {
		c.mx.ReceiveEmpty()
		return "", false
	}
	if !utf8.Valid(payload) {
		c.log.Debug().Int("len", len(payload)).Msg("dropping non-UTF-8 payload")
		c.mx.RecordError("non-UTF-8 payload received")
		return "", false
	}
	c.mx.ReceiveDelivered()
	return string(payload), true
}
