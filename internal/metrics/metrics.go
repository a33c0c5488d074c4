// Package metrics exposes session counters over Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
)

// Metrics holds the collectors. It implements breakout.Observer so a
// session can report to it directly. All methods are safe for concurrent
// use; SSH sessions share one Metrics.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted     prometheus.Counter
	SessionsFinished    *prometheus.CounterVec
	BlocksDestroyed     prometheus.Counter
	TransitionsRejected *prometheus.CounterVec
	SessionDuration     prometheus.Histogram
	ActivePlayers       prometheus.Gauge
}

// New creates the collectors on a private registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Sessions that reached the tap-to-play screen",
		}),
		SessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Finished sessions by outcome",
		}, []string{"outcome"}),
		BlocksDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_destroyed_total",
			Help:      "Blocks broken across all sessions",
		}),
		TransitionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "State transitions refused by the state machine",
		}, []string{"from", "to"}),
		SessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_play_seconds",
			Help:      "Time spent in play per finished session",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		ActivePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_players",
			Help:      "Connected SSH players",
		}),
	}

	m.registry.MustRegister(
		m.SessionsStarted,
		m.SessionsFinished,
		m.BlocksDestroyed,
		m.TransitionsRejected,
		m.SessionDuration,
		m.ActivePlayers,
	)
	return m
}

func (m *Metrics) SessionStarted() {
	m.SessionsStarted.Inc()
}

func (m *Metrics) BlockDestroyed(breakout.Block) {
	m.BlocksDestroyed.Inc()
}

func (m *Metrics) SessionFinished(o breakout.Outcome, elapsed time.Duration) {
	m.SessionsFinished.WithLabelValues(o.String()).Inc()
	m.SessionDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) TransitionRejected(from, to breakout.GameState) {
	m.TransitionsRejected.WithLabelValues(from.String(), to.String()).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

var _ breakout.Observer = (*Metrics)(nil)
