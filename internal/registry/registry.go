// Package registry owns the lifecycle of parking entries: it is the only code
// that writes stored records.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/storage"
	"github.com/Tiliavir/spotsecure/internal/validate"
)

var (
	ErrCapacityExceeded = errors.New("parking lot is full")
	ErrNotFound         = errors.New("parking entry not found")
)

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) { r.newID = gen }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// Registry implements create, update, delete and list over a storage.Store
// with a bounded capacity.
type Registry struct {
	store     storage.Store
	validator *validate.Validator
	capacity  int
	now       func() time.Time
	newID     func() string
	log       *zap.Logger
}

// New returns a Registry. capacity must be positive.
func New(store storage.Store, capacity int, opts ...Option) (*Registry, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	r := &Registry{
		store:     store,
		validator: validate.New(),
		capacity:  capacity,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Capacity returns the configured lot size.
func (r *Registry) Capacity() int {
	return r.capacity
}

// List returns the active entries in insertion order, read fresh from the
// store.
func (r *Registry) List(ctx context.Context) ([]model.Entry, error) {
	entries, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return active(entries), nil
}

// Create validates the draft, checks capacity and stores a new entry.
func (r *Registry) Create(ctx context.Context, d model.Draft) (model.Entry, error) {
	var created model.Entry
	err := r.store.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		candidate := d.Entry()
		if err := r.validator.Validate(candidate, entries, ""); err != nil {
			return nil, err
		}
		if count(entries) >= r.capacity {
			return nil, fmt.Errorf("%w: maximum capacity is %d vehicles", ErrCapacityExceeded, r.capacity)
		}
		candidate.ID = r.newID()
		candidate.CreatedAt = r.now().UTC()
		candidate.Status = model.StatusActive
		created = candidate
		return append(entries, candidate), nil
	})
	if err != nil {
		return model.Entry{}, err
	}
	r.log.Info("entry created",
		zap.String("id", created.ID),
		zap.String("license_plate", created.LicensePlate),
		zap.String("parking_type", string(created.ParkingType)),
	)
	return created, nil
}

// Update merges patch into the active entry with the given id and
// re-validates it. id and createdAt cannot change.
func (r *Registry) Update(ctx context.Context, id string, patch model.Patch) (model.Entry, error) {
	var updated model.Entry
	err := r.store.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		idx := indexOf(entries, func(e model.Entry) bool { return e.ID == id })
		if idx < 0 {
			return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
		}
		merged := patch.Apply(entries[idx])
		if err := r.validator.Validate(merged, entries, id); err != nil {
			return nil, err
		}
		next := make([]model.Entry, len(entries))
		copy(next, entries)
		next[idx] = merged
		updated = merged
		return next, nil
	})
	if err != nil {
		return model.Entry{}, err
	}
	r.log.Info("entry updated", zap.String("id", updated.ID), zap.String("license_plate", updated.LicensePlate))
	return updated, nil
}

// Delete removes the active entry whose id, or failing that license plate,
// equals plateOrID, and returns it.
func (r *Registry) Delete(ctx context.Context, plateOrID string) (model.Entry, error) {
	var removed model.Entry
	err := r.store.Mutate(ctx, func(entries []model.Entry) ([]model.Entry, error) {
		idx := indexOf(entries, func(e model.Entry) bool { return e.ID == plateOrID })
		if idx < 0 {
			idx = indexOf(entries, func(e model.Entry) bool { return e.LicensePlate == plateOrID })
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, plateOrID)
		}
		removed = entries[idx]
		next := make([]model.Entry, 0, len(entries)-1)
		next = append(next, entries[:idx]...)
		return append(next, entries[idx+1:]...), nil
	})
	if err != nil {
		return model.Entry{}, err
	}
	r.log.Info("entry removed", zap.String("id", removed.ID), zap.String("license_plate", removed.LicensePlate))
	return removed, nil
}

// Clear removes every entry. Callers are expected to confirm first.
func (r *Registry) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return err
	}
	r.log.Warn("all entries cleared")
	return nil
}

func active(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Active() {
			out = append(out, e)
		}
	}
	return out
}

func count(entries []model.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Active() {
			n++
		}
	}
	return n
}

// indexOf returns the position of the first active entry matching pred.
func indexOf(entries []model.Entry, pred func(model.Entry) bool) int {
	for i, e := range entries {
		if e.Active() && pred(e) {
			return i
		}
	}
	return -1
}
