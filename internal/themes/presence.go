package themes

import (
	"sync"
	"time"
)

// Presence tracks whether an admin session is currently watching the
// theme panel. The poller only runs while someone is there to care
// about the result.
type Presence struct {
	mu       sync.Mutex
	lastBeat time.Time
	timeout  time.Duration
	now      func() time.Time
}

// NewPresence builds a tracker that considers admins gone once no
// heartbeat arrives within the timeout.
func NewPresence(timeout time.Duration) *Presence {
	return &Presence{
		timeout: timeout,
		now:     time.Now,
	}
}

// Heartbeat records that an admin session is alive right now.
func (p *Presence) Heartbeat() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastBeat = p.now()
}

// Active reports whether a heartbeat landed within the timeout.
func (p *Presence) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastBeat.IsZero() {
		return false
	}
	return p.now().Sub(p.lastBeat) <= p.timeout
}
