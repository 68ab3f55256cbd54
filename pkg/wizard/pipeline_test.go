package wizard_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wdm0006/dswizard/pkg/filter"
	"github.com/wdm0006/dswizard/pkg/meta"
	"github.com/wdm0006/dswizard/pkg/wizard"
)

func pipelineOf(t *testing.T, kinds ...filter.Kind) wizard.Pipeline {
	t.Helper()
	c := filter.NewCatalog(generalFile(1, "x.csv"), []meta.DataFile{generalFile(2, "y.csv")})
	var p wizard.Pipeline
	for _, k := range kinds {
		f, ok := c.Lookup(k)
		if !ok {
			t.Fatalf("kind %s not in catalog", k)
		}
		p = append(p, f)
	}
	return p
}

func TestCanonicalize(t *testing.T) {
	const (
		cs = filter.KindColumnSelect
		no = filter.KindNormalize
		sh = filter.KindShuffle
		ba = filter.KindBalance
		sp = filter.KindSplit
		me = filter.KindMerge
	)
	tests := []struct {
		name string
		in   []filter.Kind
		want []filter.Kind
	}{
		{"empty", nil, []filter.Kind{}},
		{"order kept", []filter.Kind{sh, no, me}, []filter.Kind{sh, no, me}},
		{"column-select last", []filter.Kind{cs, no, sh}, []filter.Kind{no, sh, cs}},
		{"balance first", []filter.Kind{no, ba, cs}, []filter.Kind{ba, no, cs}},
		{"split before balance", []filter.Kind{cs, ba, no, sp}, []filter.Kind{sp, ba, no, cs}},
		{"split only", []filter.Kind{sp}, []filter.Kind{sp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := pipelineOf(t, tt.in...)
			orig := in.Kinds()
			got := wizard.Canonicalize(in)
			if diff := cmp.Diff(tt.want, got.Kinds()); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(orig, in.Kinds()); diff != "" {
				t.Fatalf("input modified:\n%s", diff)
			}
			if diff := cmp.Diff(got.Kinds(), wizard.Canonicalize(got).Kinds()); diff != "" {
				t.Fatalf("not idempotent:\n%s", diff)
			}
		})
	}
}

func TestPipelineInsertRemove(t *testing.T) {
	p := pipelineOf(t, filter.KindNormalize, filter.KindShuffle, filter.KindMerge)
	rest, pos := p.Remove(filter.KindShuffle)
	if pos != 1 {
		t.Fatalf("pos %d", pos)
	}
	if _, pos := rest.Remove(filter.KindShuffle); pos != -1 {
		t.Fatal("removed twice")
	}
	back := rest.Insert(pos, p[1])
	if diff := cmp.Diff(p.Kinds(), back.Kinds()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := rest.Insert(-1, p[1]).Kinds(); got[len(got)-1] != filter.KindShuffle {
		t.Fatalf("negative position must append: %v", got)
	}
}
