package notification

import (
	"sync"
	"time"
)

// Common front desk messages.
const (
	MsgCheckedIn  = "Member checked in successfully!"
	MsgCheckedOut = "Member checked out successfully!"
)

// DefaultClearDelay is how long a message stays visible.
const DefaultClearDelay = 3 * time.Second

// Timer is the part of *time.Timer the channel needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Channel carries a single transient status message that clears itself.
//
// Every Announce stops the previously scheduled clear and bumps a generation
// counter. A clear that already fired before it could be stopped compares its
// generation and leaves the newer message alone.
type Channel struct {
	mu        sync.Mutex
	message   string
	gen       uint64
	pending   Timer
	delay     time.Duration
	afterFunc AfterFunc
	listeners []func(string)
}

// NewChannel creates a channel that clears messages after delay.
func NewChannel(delay time.Duration) *Channel {
	if delay <= 0 {
		delay = DefaultClearDelay
	}
	return &Channel{
		delay:     delay,
		afterFunc: realAfterFunc,
	}
}

// Subscribe registers fn to receive every announced message.
// Listeners run synchronously and must not block.
func (c *Channel) Subscribe(fn func(message string)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Announce shows message and restarts the clearing delay.
func (c *Channel) Announce(message string) {
	c.mu.Lock()
	if c.pending != nil {
		c.pending.Stop()
	}
	c.gen++
	gen := c.gen
	c.message = message
	c.pending = c.afterFunc(c.delay, func() { c.clear(gen) })
	listeners := append([]func(string){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(message)
	}
}

func (c *Channel) clear(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.message = ""
	c.pending = nil
}

// Current returns the visible message, or "" once it has cleared.
func (c *Channel) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}
