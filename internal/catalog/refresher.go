package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"comfora/core-go/internal/metrics"
)

// Queries is the minimal DB interface the refresher needs.
// *catalogsql.Queries satisfies this.
type Queries interface {
	CatalogVersion(ctx context.Context) (string, error)
	BuildSnapshot(ctx context.Context) (*Snapshot, error)
}

// Refresher polls the catalog version in the database and swaps a fresh
// snapshot into the store whenever it changes. Pricing passes keep the
// snapshot they started with; the next request picks up the new one.
type Refresher struct {
	log          zerolog.Logger
	q            Queries
	store        *Store
	pollInterval time.Duration
	metrics      *metrics.Metrics
}

// RefresherOptions tunes the poll loop; zero values pick defaults.
type RefresherOptions struct {
	PollInterval time.Duration
}

func NewRefresher(log zerolog.Logger, q Queries, store *Store, opts RefresherOptions, m *metrics.Metrics) *Refresher {
	pi := opts.PollInterval
	if pi <= 0 {
		pi = 30 * time.Second
	}
	return &Refresher{
		log:          log,
		q:            q,
		store:        store,
		pollInterval: pi,
		metrics:      m,
	}
}

// Run polls until the context is cancelled, backing off on consecutive
// failures so a broken catalog table does not flood the log.
func (r *Refresher) Run(ctx context.Context) {
	if r == nil || r.q == nil || r.store == nil {
		return
	}

	timer := time.NewTimer(r.pollInterval)
	defer timer.Stop()

	var consecutiveFailures int
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := r.refreshOnce(ctx); err != nil {
			consecutiveFailures++
			r.log.Warn().Err(err).Int("consecutive_failures", consecutiveFailures).Msg("catalog refresh failed")
		} else {
			consecutiveFailures = 0
		}

		timer.Reset(backoffDuration(r.pollInterval, consecutiveFailures))
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) error {
	version, err := r.q.CatalogVersion(ctx)
	if err != nil {
		return err
	}
	if version == "" || version == r.store.Current().Version {
		return nil
	}

	start := time.Now()
	snap, err := r.q.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	r.store.Replace(snap)
	r.metrics.IncCatalogRefresh()
	r.metrics.ObserveCatalogRefreshDuration(time.Since(start))
	r.log.Info().Str("version", snap.Version).Msg("catalog snapshot refreshed")
	return nil
}

func backoffDuration(base time.Duration, failures int) time.Duration {
	if base <= 0 {
		base = 30 * time.Second
	}
	if failures <= 0 {
		return base
	}

	// Exponential-ish backoff: base * 2^failures, capped.
	if failures > 4 {
		failures = 4
	}
	d := base * time.Duration(1<<failures)
	if d > 5*time.Minute {
		return 5 * time.Minute
	}
	return d
}
