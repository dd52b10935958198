package view

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"vendora/internal/metrics"
	"vendora/internal/session"
)

// Counter records at most one view per (session, store). The increment
// is fire-and-forget: a failure is logged and dropped, never retried —
// an undercount is acceptable for an analytics signal, an overcount
// from retries is not.
type Counter struct {
	sessions session.Store
	stores   storeRepo
	metrics  *metrics.Metrics
	logger   *log.Logger

	// inflight is the in-process one-shot guard. The intent is
	// recorded here, before any I/O, so two near-simultaneous
	// registrations for the same key cannot both pass the marker
	// check.
	inflight sync.Map

	// dispatch runs the increment; tests replace it to run inline.
	dispatch func(func())

	timeout time.Duration
}

type storeRepo interface {
	IncrementViewCount(ctx context.Context, storeID string) error
}

func NewCounter(sessions session.Store, stores storeRepo, m *metrics.Metrics, logger *log.Logger) *Counter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Counter{
		sessions: sessions,
		stores:   stores,
		metrics:  m,
		logger:   logger,
		dispatch: func(fn func()) { go fn() },
		timeout:  5 * time.Second,
	}
}

// Register notes a storefront view for this session. Duplicate calls
// for the same (session, store) are no-ops; errors from the marker
// store or the increment are swallowed after logging.
func (c *Counter) Register(ctx context.Context, sessionID, storeID string) {
	if sessionID == "" || storeID == "" {
		return
	}
	key := sessionID + ":" + storeID

	// Claim the key before any network effect. The claim is released
	// once the marker is written (or the attempt abandoned); from then
	// on the session marker carries the idempotency.
	if _, alreadyClaimed := c.inflight.LoadOrStore(key, struct{}{}); alreadyClaimed {
		return
	}
	defer c.inflight.Delete(key)

	seen, err := c.sessions.HasViewMarker(ctx, sessionID, storeID)
	if err != nil {
		c.logger.Printf("view counter: marker check session=%s store=%s error=%v", sessionID, storeID, err)
		return
	}
	if seen {
		return
	}

	// Marker first, increment second: a failed increment stays
	// unrecorded rather than risking a double count later.
	if err := c.sessions.SetViewMarker(ctx, sessionID, storeID); err != nil {
		c.logger.Printf("view counter: set marker session=%s store=%s error=%v", sessionID, storeID, err)
		return
	}

	if c.metrics != nil {
		c.metrics.ViewsRegistered.Inc()
	}
	c.dispatch(func() {
		incCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.stores.IncrementViewCount(incCtx, storeID); err != nil {
			c.logger.Printf("view counter: increment store=%s error=%v", storeID, err)
			if c.metrics != nil {
				c.metrics.ViewIncrementErrors.Inc()
			}
		}
	})
}
