package autosave

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/pkg/cache"
	"github.com/cardnews/cardnews-backend/pkg/logger"
)

const (
	DefaultWindow = time.Second
	DefaultTTL    = 24 * time.Hour

	drainTimeout = 5 * time.Second
)

type slot struct {
	rec      Record
	deadline time.Time
}

// Debouncer keeps one pending draft per document. A later Submit replaces the
// pending draft and pushes its deadline back; only the last one in a window is written.
type Debouncer struct {
	store  Store
	window time.Duration
	ttl    time.Duration
	tick   time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]*slot

	// held while writing so Discard cannot interleave with an in-flight write
	writeMu sync.Mutex
}

// Option configures a Debouncer
type Option func(*Debouncer)

// WithWindow sets the debounce window
func WithWindow(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.window = d
		}
	}
}

// WithTTL sets the retention of written drafts
func WithTTL(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.ttl = d
		}
	}
}

// WithClock overrides time.Now (tests)
func WithClock(now func() time.Time) Option {
	return func(db *Debouncer) { db.now = now }
}

// WithTick sets how often Run checks for due drafts
func WithTick(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.tick = d
		}
	}
}

// NewDebouncer creates a debouncer writing to store
func NewDebouncer(store Store, opts ...Option) *Debouncer {
	d := &Debouncer{
		store:   store,
		window:  DefaultWindow,
		ttl:     DefaultTTL,
		now:     time.Now,
		pending: make(map[string]*slot),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tick == 0 {
		d.tick = d.window / 4
	}
	return d
}

// Submit queues data for (kind, id) and returns when it will be written
func (d *Debouncer) Submit(kind domain.AutosaveKind, id string, data json.RawMessage) time.Time {
	key := cache.AutosaveKey(string(kind), id)
	deadline := d.now().Add(d.window)

	d.mu.Lock()
	d.pending[key] = &slot{
		rec:      Record{ID: id, Type: kind, Data: append(json.RawMessage(nil), data...)},
		deadline: deadline,
	}
	pendingGauge.Set(float64(len(d.pending)))
	d.mu.Unlock()

	submitsTotal.WithLabelValues(string(kind)).Inc()
	return deadline
}

// Cancel drops the pending draft for (kind, id), if any
func (d *Debouncer) Cancel(kind domain.AutosaveKind, id string) {
	d.mu.Lock()
	delete(d.pending, cache.AutosaveKey(string(kind), id))
	pendingGauge.Set(float64(len(d.pending)))
	d.mu.Unlock()
}

// Discard drops the pending draft and deletes the stored one
func (d *Debouncer) Discard(ctx context.Context, kind domain.AutosaveKind, id string) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	d.Cancel(kind, id)
	return d.store.Delete(ctx, kind, id)
}

// Pending returns the queued draft and its deadline
func (d *Debouncer) Pending(kind domain.AutosaveKind, id string) (Record, time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.pending[cache.AutosaveKey(string(kind), id)]
	if !ok {
		return Record{}, time.Time{}, false
	}
	return s.rec, s.deadline, true
}

// FlushDue writes every draft whose deadline is not after now and returns how many
// were attempted. Write failures are logged and counted, never returned.
func (d *Debouncer) FlushDue(ctx context.Context, now time.Time) int {
	return d.flush(ctx, func(s *slot) bool { return !s.deadline.After(now) })
}

// FlushAll writes every pending draft regardless of deadline
func (d *Debouncer) FlushAll(ctx context.Context) int {
	return d.flush(ctx, func(*slot) bool { return true })
}

// Run flushes due drafts until ctx is done, then drains what is left
func (d *Debouncer) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	logger.GetLogger().Info().Dur("window", d.window).Msg("autosave debouncer started")
	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
			n := d.FlushAll(drainCtx)
			cancel()
			logger.GetLogger().Info().Int("drained", n).Msg("autosave debouncer stopped")
			return nil
		case <-ticker.C:
			d.FlushDue(ctx, d.now())
		}
	}
}

func (d *Debouncer) flush(ctx context.Context, due func(*slot) bool) int {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	batch := make([]Record, 0)
	for key, s := range d.pending {
		if due(s) {
			batch = append(batch, s.rec)
			delete(d.pending, key)
		}
	}
	pendingGauge.Set(float64(len(d.pending)))
	d.mu.Unlock()

	for _, rec := range batch {
		rec.LastSaved = d.now()
		if err := d.store.Put(ctx, rec, d.ttl); err != nil {
			writesTotal.WithLabelValues(string(rec.Type), "error").Inc()
			logger.GetLogger().Warn().
				Err(err).
				Str("kind", string(rec.Type)).
				Str("id", rec.ID).
				Msg("autosave write failed")
			continue
		}
		writesTotal.WithLabelValues(string(rec.Type), "ok").Inc()
	}
	return len(batch)
}
