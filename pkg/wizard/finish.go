package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/wdm0006/dswizard/pkg/dataset"
)

// Status tracks the submission of the finished chain.
type Status int

const (
	Idle Status = iota
	Pending
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Submitter creates datasets on the backend.
type Submitter interface {
	CreateDatasets(ctx context.Context, p dataset.Payload) ([]dataset.Record, error)
}

// Payload serializes the applied chain without submitting it.
func (w *Wizard) Payload() (dataset.Payload, error) {
	if w.state != SelectingFilter {
		return dataset.Payload{}, w.illegal("finish", "")
	}
	for _, f := range w.applied {
		if !f.Valid() {
			return dataset.Payload{}, fmt.Errorf("%s: %w", f.Kind(), ErrInvalidFilter)
		}
	}
	return dataset.Serialize(w.applied, w.src, w.name), nil
}

// Finish submits the chain. Only one submission may be in flight; on failure
// the chain is left as is so Finish can be called again.
func (w *Wizard) Finish(ctx context.Context, sub Submitter) ([]dataset.Record, error) {
	p, err := w.Payload()
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.status == Pending {
		w.mu.Unlock()
		return nil, ErrFinishInFlight
	}
	w.status = Pending
	w.lastErr = nil
	rev := w.rev
	w.mu.Unlock()

	start := time.Now()
	recs, err := sub.CreateDatasets(ctx, p)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.rev != rev {
		// the chain changed while in flight; the outcome no longer describes it
		w.status = Idle
		w.lastErr = nil
		w.created = nil
		w.logger.Printf("wizard %s: chain edited during submission, status cleared", w.id)
		if err != nil {
			return nil, fmt.Errorf("create datasets: %w", err)
		}
		return recs, nil
	}
	if err != nil {
		w.status = Failed
		w.lastErr = err
		w.logger.Printf("wizard %s: dataset creation failed after %s: %v", w.id, time.Since(start), err)
		return nil, fmt.Errorf("create datasets: %w", err)
	}
	w.status = Done
	w.created = recs
	w.logger.Printf("wizard %s: created %d dataset(s) in %s", w.id, len(recs), time.Since(start))
	return recs, nil
}

// Status returns the submission status and, when it failed, the error.
func (w *Wizard) Status() (Status, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status, w.lastErr
}

// Created returns the datasets created by the last successful Finish.
func (w *Wizard) Created() []dataset.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]dataset.Record(nil), w.created...)
}

// touch clears a settled submission status after an edit. A pending
// submission keeps its status until it settles, then goes back to Idle.
func (w *Wizard) touch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rev++
	if w.status == Pending {
		return
	}
	w.status = Idle
	w.lastErr = nil
	w.created = nil
}
