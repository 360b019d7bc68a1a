package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ThemeSyncMetrics records metadata for the theme poller and broadcast fanout.
type ThemeSyncMetrics struct {
	pollDuration *prometheus.HistogramVec
	pollSuccess  *prometheus.CounterVec
	pollFailure  *prometheus.CounterVec
	broadcasts   *prometheus.CounterVec
	stale        *prometheus.CounterVec
	halted       prometheus.Gauge
}

// NewThemeSyncMetrics registers the theme sync metrics on the provided registerer.
func NewThemeSyncMetrics(reg prometheus.Registerer) *ThemeSyncMetrics {
	if reg == nil {
		return &ThemeSyncMetrics{}
	}
	pollDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "theme_poll_duration_seconds",
		Help:    "Duration of theme poll cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"poller"})
	pollSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_poll_success",
		Help: "Successful theme poll cycles.",
	}, []string{"poller"})
	pollFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_poll_failure",
		Help: "Failed theme poll cycles.",
	}, []string{"poller"})
	broadcasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_broadcasts_total",
		Help: "Theme change notifications published to subscribers.",
	}, []string{"channel"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_broadcasts_stale_total",
		Help: "Theme change notifications discarded as stale.",
	}, []string{"channel"})
	halted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "theme_poller_halted",
		Help: "Set to 1 once the theme poller has permanently stopped.",
	})
	reg.MustRegister(pollDuration, pollSuccess, pollFailure, broadcasts, stale, halted)
	return &ThemeSyncMetrics{
		pollDuration: pollDuration,
		pollSuccess:  pollSuccess,
		pollFailure:  pollFailure,
		broadcasts:   broadcasts,
		stale:        stale,
		halted:       halted,
	}
}

// ObservePoll records the duration for one poll cycle of the named poller.
func (m *ThemeSyncMetrics) ObservePoll(poller string, duration time.Duration) {
	if m == nil || m.pollDuration == nil {
		return
	}
	m.pollDuration.WithLabelValues(normalizeLabel(poller)).Observe(duration.Seconds())
}

// IncPollSuccess increments the success counter for the named poller.
func (m *ThemeSyncMetrics) IncPollSuccess(poller string) {
	if m == nil || m.pollSuccess == nil {
		return
	}
	m.pollSuccess.WithLabelValues(normalizeLabel(poller)).Inc()
}

// IncPollFailure increments the failure counter for the named poller.
func (m *ThemeSyncMetrics) IncPollFailure(poller string) {
	if m == nil || m.pollFailure == nil {
		return
	}
	m.pollFailure.WithLabelValues(normalizeLabel(poller)).Inc()
}

// IncBroadcast increments the published notification counter for the channel.
func (m *ThemeSyncMetrics) IncBroadcast(channel string) {
	if m == nil || m.broadcasts == nil {
		return
	}
	m.broadcasts.WithLabelValues(normalizeLabel(channel)).Inc()
}

// IncStaleBroadcast increments the stale notification counter for the channel.
func (m *ThemeSyncMetrics) IncStaleBroadcast(channel string) {
	if m == nil || m.stale == nil {
		return
	}
	m.stale.WithLabelValues(normalizeLabel(channel)).Inc()
}

// SetHalted flips the permanent halt gauge for the poller.
func (m *ThemeSyncMetrics) SetHalted(halted bool) {
	if m == nil || m.halted == nil {
		return
	}
	if halted {
		m.halted.Set(1)
		return
	}
	m.halted.Set(0)
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
