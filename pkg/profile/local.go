package profile

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/wdm0006/dswizard/dataio"
	"github.com/wdm0006/dswizard/pkg/frame"
	"github.com/wdm0006/dswizard/pkg/meta"
)

// Source is a local data file registered under an id.
type Source struct {
	ID      int64
	Path    string
	Options dataio.Options
}

type entry struct {
	df    meta.DataFile
	frame *frame.Frame
}

// Local is a meta.Provider over local files. Files are read and profiled the
// first time they are asked for.
type Local struct {
	sources []Source
	logger  *log.Logger

	mu    sync.Mutex
	cache map[int64]entry
}

var _ meta.Provider = (*Local)(nil)

func NewLocal(sources ...Source) *Local {
	return &Local{sources: sources, logger: log.Default(), cache: make(map[int64]entry)}
}

// SetLogger replaces the logger; nil restores log.Default().
func (l *Local) SetLogger(lg *log.Logger) *Local {
	if lg == nil {
		lg = log.Default()
	}
	l.logger = lg
	return l
}

func (l *Local) DataFile(ctx context.Context, id int64) (meta.DataFile, error) {
	e, err := l.load(ctx, id)
	if err != nil {
		return meta.DataFile{}, err
	}
	return e.df, nil
}

func (l *Local) DataFiles(ctx context.Context) ([]meta.DataFile, error) {
	out := make([]meta.DataFile, 0, len(l.sources))
	for _, s := range l.sources {
		e, err := l.load(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, e.df)
	}
	return out, nil
}

// Frame returns the contents of file id.
func (l *Local) Frame(ctx context.Context, id int64) (*frame.Frame, error) {
	e, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.frame, nil
}

func (l *Local) load(ctx context.Context, id int64) (entry, error) {
	if err := ctx.Err(); err != nil {
		return entry{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.cache[id]; ok {
		return e, nil
	}
	var src *Source
	for i := range l.sources {
		if l.sources[i].ID == id {
			src = &l.sources[i]
			break
		}
	}
	if src == nil {
		return entry{}, fmt.Errorf("data file %d: %w", id, meta.ErrNotFound)
	}
	f, err := dataio.Read(src.Path, src.Options)
	if err != nil {
		return entry{}, fmt.Errorf("read data file %d: %w", id, err)
	}
	m, err := Profile(f, src.Options.HasHeader)
	if err != nil {
		return entry{}, fmt.Errorf("profile data file %d: %w", id, err)
	}
	e := entry{
		df:    meta.DataFile{ID: id, Name: filepath.Base(src.Path), FileFormat: meta.General, Meta: m},
		frame: f,
	}
	l.cache[id] = e
	l.logger.Printf("profiled %s: %d rows, %d columns", src.Path, m.DataRows, m.NumColumns)
	return e, nil
}
