package preview_test

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/wdm0006/dswizard/dataio"
	"github.com/wdm0006/dswizard/pkg/filter"
	"github.com/wdm0006/dswizard/pkg/meta"
	"github.com/wdm0006/dswizard/pkg/preview"
	"github.com/wdm0006/dswizard/pkg/profile"
	"github.com/wdm0006/dswizard/pkg/wizard"
)

func TestPreviewWizardPayload(t *testing.T) {
	ctx := context.Background()
	iris := filepath.FromSlash("../../examples/data/iris.csv")
	opt := dataio.Options{HasHeader: true}
	local := profile.NewLocal(
		profile.Source{ID: 1, Path: iris, Options: opt},
		profile.Source{ID: 2, Path: iris, Options: opt},
	).SetLogger(log.New(io.Discard, "", 0))
	src, siblings, err := meta.Load(ctx, local, 1)
	if err != nil {
		t.Fatal(err)
	}

	w := wizard.New(src, siblings).SetLogger(log.New(io.Discard, "", 0))
	if err := w.ApplyFilter(); err != nil {
		t.Fatal(err)
	}
	for _, k := range []filter.Kind{filter.KindMerge, filter.KindSplit, filter.KindNormalize} {
		if _, err := w.SelectFilter(k); err != nil {
			t.Fatal(err)
		}
		if err := w.ApplyFilter(); err != nil {
			t.Fatal(err)
		}
	}
	p, err := w.Payload()
	if err != nil {
		t.Fatal(err)
	}
	if !p.Split() {
		t.Fatal("split payload expected")
	}
	f, err := local.Frame(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"iris_train": 14 + 21, "iris_test": 7 + 21}
	for _, req := range p.Requests {
		out, err := preview.Run(ctx, f, req, preview.Options{Resolver: local})
		if err != nil {
			t.Fatalf("%s: %v", req.Name, err)
		}
		if out.Rows() != want[req.Name] {
			t.Fatalf("%s: %d rows, want %d", req.Name, out.Rows(), want[req.Name])
		}
		if out.Cols() != 5 {
			t.Fatalf("%s: %d columns", req.Name, out.Cols())
		}
	}
}
