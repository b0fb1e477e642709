package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Tiliavir/spotsecure/internal/model"
)

// Notifier sends a single notification for an entry.
type Notifier interface {
	Notify(ctx context.Context, e model.Entry) error
}

// Outcome is the result of one dispatched notification.
type Outcome struct {
	EntryID string
	Err     error
}

// Dispatcher runs notifications in the background so that a slow or failing
// endpoint never blocks the mutation that triggered it.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger

	wg       sync.WaitGroup
	mu       sync.Mutex
	outcomes []Outcome
}

// NewDispatcher returns a Dispatcher sending through n.
func NewDispatcher(n Notifier, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{notifier: n, log: log}
}

// Dispatch starts one notification attempt for e and returns immediately.
// Entries without a mobile number are skipped. Cancelling ctx does not abort
// a notification already in flight.
func (d *Dispatcher) Dispatch(ctx context.Context, e model.Entry) {
	if e.MobileNumber == "" {
		d.log.Debug("no mobile number, notification skipped", zap.String("id", e.ID))
		return
	}

	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		err := d.notifier.Notify(ctx, e)
		if err != nil {
			d.log.Warn("notification failed", zap.String("id", e.ID), zap.Error(err))
		} else {
			d.log.Info("notification sent", zap.String("id", e.ID))
		}
		d.mu.Lock()
		d.outcomes = append(d.outcomes, Outcome{EntryID: e.ID, Err: err})
		d.mu.Unlock()
	}()
}

// Wait blocks until every dispatched notification finished and returns their
// outcomes.
func (d *Dispatcher) Wait() []Outcome {
	d.wg.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Outcome, len(d.outcomes))
	copy(out, d.outcomes)
	return out
}
