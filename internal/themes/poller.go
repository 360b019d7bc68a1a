package themes

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/db"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
	"github.com/ghorkotha/ghorkotha-backend/pkg/metrics"
	"github.com/google/uuid"
)

const pollerName = "active-theme"

// ActiveFetcher loads the currently active theme, nil when none.
type ActiveFetcher interface {
	GetActive(ctx context.Context) (*models.ThemeSetting, error)
}

// Poller watches the active theme while an admin session is present and
// pushes changes into the applier and out over the broadcaster. It
// halts permanently after repeated failures rather than hammering a
// database that is clearly unwell.
type Poller struct {
	fetcher     ActiveFetcher
	applier     *Applier
	broadcaster *Broadcaster
	presence    *Presence
	lock        Lock
	interval    time.Duration
	maxFailures int
	metrics     *metrics.ThemeSyncMetrics
	logg        *logger.Logger

	kick chan struct{}

	lastSeen  uuid.UUID
	hasSeen   bool
	failures  int
	halted    atomic.Bool
	wasActive bool
	isLeader  bool
}

// NewPoller wires the poll loop. A nil presence tracker means the
// poller is always considered watched; a nil lock means this instance
// polls unconditionally (single-replica deployments and tests).
func NewPoller(fetcher ActiveFetcher, applier *Applier, broadcaster *Broadcaster, presence *Presence, lock Lock, interval time.Duration, maxFailures int, m *metrics.ThemeSyncMetrics, logg *logger.Logger) (*Poller, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("active theme fetcher required")
	}
	if applier == nil {
		return nil, fmt.Errorf("applier required")
	}
	if broadcaster == nil {
		return nil, fmt.Errorf("broadcaster required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if maxFailures <= 0 {
		return nil, fmt.Errorf("max failures must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Poller{
		fetcher:     fetcher,
		applier:     applier,
		broadcaster: broadcaster,
		presence:    presence,
		lock:        lock,
		interval:    interval,
		maxFailures: maxFailures,
		metrics:     m,
		logg:        logg,
		kick:        make(chan struct{}, 1),
	}, nil
}

// Kick requests an out-of-band poll, used when an admin session shows
// up between ticks. Safe to call from any goroutine.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Halted reports whether the poller has permanently stopped.
func (p *Poller) Halted() bool {
	return p.halted.Load()
}

// Run polls until the context ends or the poller halts permanently.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	if p.lock != nil {
		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := p.lock.Release(releaseCtx); err != nil {
				p.logg.Warn(releaseCtx, fmt.Sprintf("release theme poll lock: %v", err))
			}
		}()
	}

	p.tick(ctx)
	for {
		if p.halted.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		case <-p.kick:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if p.halted.Load() {
		return
	}
	if p.presence != nil && !p.presence.Active() {
		p.wasActive = false
		return
	}
	if p.lock != nil {
		leader, err := p.lock.Acquire(ctx)
		if err != nil {
			p.logg.Warn(ctx, fmt.Sprintf("theme poll lock: %v", err))
			p.isLeader = false
			return
		}
		if !leader {
			if p.isLeader {
				p.logg.Debug(ctx, "another instance took over theme polling")
			}
			p.isLeader = false
			return
		}
		p.isLeader = true
	}
	if p.presence != nil && !p.wasActive {
		p.logg.Debug(ctx, "admin present, resuming theme polling")
	}
	p.wasActive = true
	p.poll(ctx)
}

// poll runs one fetch-compare-apply cycle.
func (p *Poller) poll(ctx context.Context) {
	started := time.Now()
	theme, err := p.fetcher.GetActive(ctx)
	p.metrics.ObservePoll(pollerName, time.Since(started))

	if err != nil {
		p.metrics.IncPollFailure(pollerName)
		if db.IsRelationMissing(err) {
			p.halt(ctx, "theme tables are not provisioned, polling stopped")
			return
		}
		p.failures++
		p.logg.Warn(ctx, fmt.Sprintf("theme poll failed (%d consecutive): %v", p.failures, err))
		if p.failures > p.maxFailures {
			p.halt(ctx, fmt.Sprintf("theme polling halted after %d consecutive failures", p.failures))
		}
		return
	}

	p.metrics.IncPollSuccess(pollerName)
	p.failures = 0

	currentID := uuid.Nil
	if theme != nil {
		currentID = theme.ID
	}

	if p.hasSeen && currentID == p.lastSeen {
		return
	}

	p.applier.Apply(theme)
	if p.hasSeen {
		// First load seeds the applier silently; only real changes fan out.
		if err := p.broadcaster.Publish(ctx, theme); err != nil {
			p.logg.Error(ctx, "broadcast theme change", err)
		}
	}
	p.lastSeen = currentID
	p.hasSeen = true
}

func (p *Poller) halt(ctx context.Context, reason string) {
	p.halted.Store(true)
	p.metrics.SetHalted(true)
	p.logg.Warn(ctx, reason)
}
