package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/store"
)

// State is the reconciler's position in its cycle.
type State int

const (
	// StateIdle means no drain is pending or running.
	StateIdle State = iota

	// StateDebouncing means a local mutation armed the quiet-period
	// timer; further mutations reset it.
	StateDebouncing

	// StateDraining means queued changes are being pushed to the
	// remote store.
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
	case StateDraining:
		return "draining"
	default:
		return "idle"
	}
}

// Gateway is the slice of the remote client the reconciler drains through.
type Gateway interface {
	UpsertShift(ctx context.Context, userID string, s model.Shift) error
	DeleteShift(ctx context.Context, id string) error
	UpsertNote(ctx context.Context, userID string, n model.DailyNote) error
	DeleteNote(ctx context.Context, id string) error
}

// DrainStats summarizes one drain cycle.
type DrainStats struct {
	Applied int
	Failed  int
}

// drainTimeout bounds a single drain cycle.
const drainTimeout = 30 * time.Second

// Reconciler pushes the pending-change ledger to the remote store. Each
// local mutation arms a debounce window; when it elapses with no further
// mutations, the ledger is drained. A fixed periodic trigger retries
// whatever a previous cycle left behind.
//
// There is no cross-session conflict detection: if two sessions edit the
// same entity, the last one to flush wins on the remote store.
type Reconciler struct {
	store    store.Store
	gateway  Gateway
	userID   string
	debounce time.Duration
	interval time.Duration
	clock    Clock

	mu      sync.Mutex
	state   State
	timer   Timer
	armed   bool
	drainCh chan struct{}
	stopCh  chan struct{}
	running bool
}

// New creates a Reconciler draining s through gw for the given user.
// Zero durations fall back to a 5s debounce and 60s periodic interval.
func New(s store.Store, gw Gateway, userID string, debounce, interval time.Duration, clock Clock) *Reconciler {
	if debounce <= 0 {
		debounce = 5 * time.Second
	}
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Reconciler{
		store:    s,
		gateway:  gw,
		userID:   userID,
		debounce: debounce,
		interval: interval,
		clock:    clock,
		drainCh:  make(chan struct{}, 1),
	}
}

// State returns the reconciler's current cycle position.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Notify records that a local mutation occurred. The debounce window is
// (re)armed so a burst of edits coalesces into one flush.
func (r *Reconciler) Notify() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Reset(r.debounce)
	} else {
		r.timer = r.clock.AfterFunc(r.debounce, r.requestDrain)
	}
	r.armed = true
	if r.state == StateIdle {
		r.state = StateDebouncing
	}
}

// requestDrain is the debounce timer callback: it hands the drain to the
// background loop without blocking the timer goroutine.
func (r *Reconciler) requestDrain() {
	r.mu.Lock()
	r.armed = false
	r.mu.Unlock()

	select {
	case r.drainCh <- struct{}{}:
	default:
		// A drain is already queued.
	}
}

// Start launches the background loop: it serves debounce expirations and
// the fixed periodic trigger until Stop is called. A stopped reconciler
// can be started again.
func (r *Reconciler) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stop := r.stopCh
	r.mu.Unlock()

	go r.loop(stop)
}

// Stop halts the background loop and cancels any armed debounce timer.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.armed = false
	r.state = StateIdle
	close(r.stopCh)
	r.running = false
}

func (r *Reconciler) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-r.drainCh:
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		if _, err := r.Drain(ctx); err != nil {
			log.Warn("drain cycle", "err", err)
		}
		cancel()
	}
}

// Drain pushes every queued change to the remote store. Entries are
// processed in insertion order but independently: a failed entry is
// logged and left queued while later entries still proceed, and each
// success removes its entry immediately so partial progress survives.
func (r *Reconciler) Drain(ctx context.Context) (DrainStats, error) {
	r.mu.Lock()
	r.state = StateDraining
	r.mu.Unlock()

	// Mutations arriving mid-drain rearm the debounce window, so the
	// state reported afterwards must reflect the pending timer.
	defer func() {
		r.mu.Lock()
		if r.armed {
			r.state = StateDebouncing
		} else {
			r.state = StateIdle
		}
		r.mu.Unlock()
	}()

	var stats DrainStats

	changes, err := r.store.PendingChanges(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing pending changes: %w", err)
	}

	for _, c := range changes {
		if err := r.apply(ctx, c); err != nil {
			// Left queued for the next cycle, whatever the failure
			// class. Permanently rejected entries have no eviction
			// path beyond an explicit queue clear.
			log.Warn("applying queued change",
				"entity", c.EntityType, "id", c.EntityID,
				"action", c.Action, "err", err)
			stats.Failed++
			continue
		}

		if err := r.store.RemoveChange(ctx, c.EntityID); err != nil {
			log.Warn("dequeueing applied change", "id", c.EntityID, "err", err)
		}
		stats.Applied++
	}

	if stats.Failed == 0 {
		if err := r.store.SetLastSync(ctx, r.clock.Now()); err != nil {
			log.Warn("recording last sync", "err", err)
		}
	}

	return stats, nil
}

// apply maps one ledger entry onto a remote operation. Creates and
// updates both become idempotent upserts keyed by entity id, so replaying
// a change whose first attempt ended ambiguously is safe.
func (r *Reconciler) apply(ctx context.Context, c model.PendingChange) error {
	switch c.EntityType {
	case model.EntityShift:
		if c.Action == model.ActionDelete {
			return r.gateway.DeleteShift(ctx, c.EntityID)
		}
		var s model.Shift
		if err := json.Unmarshal(c.Payload, &s); err != nil {
			return fmt.Errorf("decoding shift payload: %w", err)
		}
		return r.gateway.UpsertShift(ctx, r.userID, s)

	case model.EntityNote:
		if c.Action == model.ActionDelete {
			return r.gateway.DeleteNote(ctx, c.EntityID)
		}
		var n model.DailyNote
		if err := json.Unmarshal(c.Payload, &n); err != nil {
			return fmt.Errorf("decoding note payload: %w", err)
		}
		return r.gateway.UpsertNote(ctx, r.userID, n)

	default:
		return fmt.Errorf("unknown entity type %q", c.EntityType)
	}
}
