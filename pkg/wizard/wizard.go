// Package wizard drives the editing session that turns a data file into one or
// two datasets. A Wizard owns the applied filter chain, keeps it in canonical
// order and recomputes which kinds may be added next after every edit.
package wizard

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/filter"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// State is the state of the editing session.
type State int

const (
	SelectingFilter State = iota
	ConfiguringNewFilter
	EditingAppliedFilter
)

func (s State) String() string {
	switch s {
	case SelectingFilter:
		return "selecting-filter"
	case ConfiguringNewFilter:
		return "configuring-new-filter"
	case EditingAppliedFilter:
		return "editing-applied-filter"
	}
	return "unknown"
}

// Wizard is a single editing session. Editing methods are not safe for
// concurrent use; Finish may be called from another goroutine and guards its
// own status.
type Wizard struct {
	id      uuid.UUID
	src     meta.DataFile
	catalog *filter.Catalog
	name    string
	logger  *log.Logger

	applied Pipeline
	allowed filter.KindSet
	state   State
	current filter.Filter
	editPos int

	mu      sync.Mutex
	rev     uint64
	status  Status
	created []dataset.Record
	lastErr error
}

// New opens a session on src. siblings are the user's other data files and
// feed merge candidacy. GENERAL files start with column selection already
// selected.
func New(src meta.DataFile, siblings []meta.DataFile) *Wizard {
	w := &Wizard{
		id:      uuid.New(),
		src:     src,
		catalog: filter.NewCatalog(src, siblings),
		name:    src.BaseName(),
		logger:  log.Default(),
		editPos: -1,
	}
	w.start()
	return w
}

// SetLogger replaces the logger; nil restores log.Default().
func (w *Wizard) SetLogger(l *log.Logger) *Wizard {
	if l == nil {
		l = log.Default()
	}
	w.logger = l
	return w
}

func (w *Wizard) start() {
	w.applied = nil
	w.refresh()
	w.state = SelectingFilter
	w.current = nil
	w.editPos = -1
	if k, ok := w.catalog.Mandatory(); ok {
		w.current, _ = w.catalog.Lookup(k)
		w.state = ConfiguringNewFilter
	}
}

func (w *Wizard) ID() uuid.UUID              { return w.id }
func (w *Wizard) DataFile() meta.DataFile    { return w.src }
func (w *Wizard) State() State               { return w.state }
func (w *Wizard) Current() filter.Filter     { return w.current }
func (w *Wizard) Allowed() filter.KindSet    { return w.allowed }
func (w *Wizard) NextFilters() []filter.Kind { return w.allowed.Kinds() }

// Applied returns the applied filters in canonical order.
func (w *Wizard) Applied() Pipeline { return append(Pipeline(nil), w.applied...) }

// CurrentPos is the position the filter under edit held before it was taken
// out of the chain, or -1.
func (w *Wizard) CurrentPos() int { return w.editPos }

// Lookup returns the session's instance of kind k.
func (w *Wizard) Lookup(k filter.Kind) (filter.Filter, bool) { return w.catalog.Lookup(k) }

// DatasetName is the name of the dataset created when no split is applied.
func (w *Wizard) DatasetName() string { return w.name }

func (w *Wizard) SetDatasetName(name string) {
	w.name = name
	w.touch()
}

// CanApply reports whether ApplyFilter would succeed.
func (w *Wizard) CanApply() bool {
	return (w.state == ConfiguringNewFilter || w.state == EditingAppliedFilter) && w.current.Valid()
}

// SelectFilter starts configuring a new filter of kind k, which must be allowed.
func (w *Wizard) SelectFilter(k filter.Kind) (filter.Filter, error) {
	if w.state != SelectingFilter || !w.allowed.Has(k) {
		return nil, w.illegal("select", k)
	}
	f, _ := w.catalog.Lookup(k)
	w.current = f
	w.editPos = -1
	w.state = ConfiguringNewFilter
	return f, nil
}

// ApplyFilter adds the filter being configured or edited to the chain. An
// edited filter goes back to the position it held. Nothing changes when its
// configuration is invalid.
func (w *Wizard) ApplyFilter() error {
	if w.state != ConfiguringNewFilter && w.state != EditingAppliedFilter {
		return w.illegal("apply", "")
	}
	if !w.current.Valid() {
		return ErrInvalidFilter
	}
	w.reinsert()
	return nil
}

// SelectFilterForUpdate takes applied filter k out of the chain for editing.
// Its configuration is kept.
func (w *Wizard) SelectFilterForUpdate(k filter.Kind) (filter.Filter, error) {
	if w.state != SelectingFilter {
		return nil, w.illegal("update", k)
	}
	rest, pos := w.applied.Remove(k)
	if pos < 0 {
		return nil, w.illegal("update", k)
	}
	w.current = w.applied[pos]
	w.applied = rest
	w.editPos = pos
	w.state = EditingAppliedFilter
	w.refresh()
	w.touch()
	return w.current, nil
}

// CancelUpdate puts the filter under edit back where it was.
func (w *Wizard) CancelUpdate() error {
	if w.state != EditingAppliedFilter {
		return w.illegal("cancel-update", "")
	}
	w.reinsert()
	return nil
}

// CancelSelect leaves the filter being configured out of the chain. The
// instance keeps its configuration for a later selection.
func (w *Wizard) CancelSelect() error {
	if w.state != ConfiguringNewFilter {
		return w.illegal("cancel-select", "")
	}
	w.current = nil
	w.state = SelectingFilter
	return nil
}

// ResetFilter removes kind k from the chain; its instance and configuration
// stay in the catalog. A filter under edit of another kind is put back first;
// one being configured is left out.
func (w *Wizard) ResetFilter(k filter.Kind) error {
	if _, ok := w.catalog.Lookup(k); !ok {
		return w.illegal("reset", k)
	}
	if w.state == EditingAppliedFilter && w.current.Kind() != k {
		w.applied = w.applied.Insert(w.editPos, w.current)
	}
	w.applied, _ = w.applied.Remove(k)
	w.applied = Canonicalize(w.applied)
	w.current = nil
	w.editPos = -1
	w.state = SelectingFilter
	w.refresh()
	w.touch()
	return nil
}

// ResetAllFilters empties the chain and starts the session over. Filter
// configurations are kept.
func (w *Wizard) ResetAllFilters() {
	w.start()
	w.touch()
	w.logger.Printf("wizard %s: all filters reset", w.id)
}

func (w *Wizard) reinsert() {
	w.applied = Canonicalize(w.applied.Insert(w.editPos, w.current))
	w.current = nil
	w.editPos = -1
	w.state = SelectingFilter
	w.refresh()
	w.touch()
}

// refresh recomputes the allowed kinds: the catalog kinds permitted after
// every applied filter, minus the applied ones.
func (w *Wizard) refresh() {
	allowed := w.catalog.Kinds()
	for _, f := range w.applied {
		allowed = allowed.Intersect(f.AllowedAfter())
	}
	w.allowed = allowed.Minus(w.applied.Set())
}

func (w *Wizard) illegal(op string, k filter.Kind) error {
	return &TransitionError{Op: op, State: w.state, Kind: k}
}
