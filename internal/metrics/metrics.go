// Package metrics provides lightweight counters and gauges for tracking
// runtime statistics of a pdlink session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for one client instance.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	bytesIn      atomic.Int64
	bytesOut     atomic.Int64
	sends        atomic.Int64
	receives     atomic.Int64
	noDataPolls  atomic.Int64
	droppedSends atomic.Int64
	errorsTotal  atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastErrorAt  time.Time
	lastErrorMsg string
	outDepth     func() int
	inDepth      func() int
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetQueueGauges registers depth callbacks for the outbound and inbound
// queues. Only the async transport has queues; the sync transport leaves
// both unset and the snapshot reports zero depth.
func (c *Collector) SetQueueGauges(out, in func() int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.outDepth = out
	c.inDepth = in
	c.mu.Unlock()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// SendAccepted records one payload accepted by Send.
func (c *Collector) SendAccepted() {
	if c == nil {
		return
	}
	c.sends.Add(1)
}

// SendDropped records one payload discarded because the transport had
// already failed or closed.
func (c *Collector) SendDropped() {
	if c == nil {
		return
	}
	c.droppedSends.Add(1)
}

// ReceiveDelivered records one payload handed to the caller.
func (c *Collector) ReceiveDelivered() {
	if c == nil {
		return
	}
	c.receives.Add(1)
}

// ReceiveEmpty records one Receive call that returned the no-data
// sentinel.
func (c *Collector) ReceiveEmpty() {
	if c == nil {
		return
	}
	c.noDataPolls.Add(1)
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastErrorAt = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	Sends            int64  `json:"sends"`
	Receives         int64  `json:"receives"`
	NoDataPolls      int64  `json:"no_data_polls"`
	DroppedSends     int64  `json:"dropped_sends"`
	ErrorsTotal      int64  `json:"errors_total"`
	OutboundDepth    int    `json:"outbound_depth"`
	InboundDepth     int    `json:"inbound_depth"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:       time.Since(c.startTime).Truncate(time.Second).String(),
		BytesIn:      c.bytesIn.Load(),
		BytesOut:     c.bytesOut.Load(),
		Sends:        c.sends.Load(),
		Receives:     c.receives.Load(),
		NoDataPolls:  c.noDataPolls.Load(),
		DroppedSends: c.droppedSends.Load(),
		ErrorsTotal:  c.errorsTotal.Load(),
	}
	if c.outDepth != nil {
		s.OutboundDepth = c.outDepth()
	}
	if c.inDepth != nil {
		s.InboundDepth = c.inDepth()
	}
	if !c.lastErrorAt.IsZero() {
		s.LastError = c.lastErrorAt.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
