// Package notify implements the transient user notification channel: at most
// one live message at a time, auto-dismissed after a TTL, with
// last-writer-wins replacement.
package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification for the renderer.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a single transient user-facing message.
type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// DefaultTTL is how long a notification stays live when no TTL is configured.
const DefaultTTL = 3 * time.Second

// Channel holds at most one live notification. A new Notify replaces any
// pending one and restarts the expiry timer; notifications never queue.
type Channel struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	// gen invalidates expiry timers scheduled for superseded notifications:
	// a timer only clears current if the generation it captured is still live.
	gen   uint64
	timer *time.Timer
}

// NewChannel creates a notification channel with the given auto-dismiss TTL.
// A non-positive TTL falls back to DefaultTTL.
func NewChannel(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{ttl: ttl}
}

// Notify publishes a notification with the channel's default TTL.
func (c *Channel) Notify(message string, kind Kind) {
	c.NotifyFor(message, kind, c.ttl)
}

// NotifyFor publishes a notification that auto-dismisses after ttl. It
// unconditionally replaces the current notification and cancels its pending
// expiry.
func (c *Channel) NotifyFor(message string, kind Kind, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.gen++
	c.current = &Notification{Message: message, Kind: kind}

	gen := c.gen
	c.timer = time.AfterFunc(ttl, func() {
		c.expire(gen)
	})
}

// Dismiss clears the current notification immediately and cancels any
// pending expiry. Dismissing an empty channel is a no-op.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.gen++
	c.current = nil
}

// Current returns the live notification, if any.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// expire is the timer callback. A stale timer (one whose notification was
// superseded or dismissed after it was scheduled) must be a no-op.
func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}
	c.current = nil
	c.timer = nil
}

func (c *Channel) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
