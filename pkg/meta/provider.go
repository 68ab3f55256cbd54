package meta

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("data file not found")

// Provider supplies data file metadata. DataFiles lists every file owned by the
// same user, which is where merge candidates come from.
type Provider interface {
	DataFile(ctx context.Context, id int64) (DataFile, error)
	DataFiles(ctx context.Context) ([]DataFile, error)
}

// Static is a Provider over a fixed set of files.
type Static []DataFile

func (s Static) DataFile(ctx context.Context, id int64) (DataFile, error) {
	for _, df := range s {
		if df.ID == id {
			return df, nil
		}
	}
	return DataFile{}, fmt.Errorf("data file %d: %w", id, ErrNotFound)
}

func (s Static) DataFiles(ctx context.Context) ([]DataFile, error) {
	out := make([]DataFile, len(s))
	copy(out, s)
	return out, nil
}

// Load fetches the source file and its siblings in one go.
func Load(ctx context.Context, p Provider, id int64) (DataFile, []DataFile, error) {
	src, err := p.DataFile(ctx, id)
	if err != nil {
		return DataFile{}, nil, err
	}
	all, err := p.DataFiles(ctx)
	if err != nil {
		return DataFile{}, nil, fmt.Errorf("list data files: %w", err)
	}
	siblings := make([]DataFile, 0, len(all))
	for _, df := range all {
		if df.ID != src.ID {
			siblings = append(siblings, df)
		}
	}
	return src, siblings, nil
}
