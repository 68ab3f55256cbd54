package golearn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wdm0006/dswizard/pkg/frame"
)

func labelled(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(frame.Schema{Fields: []frame.Field{
		{Name: "x", Type: frame.TypeFloat},
		{Name: "y", Type: frame.TypeInt},
	}})
	if err != nil {
		t.Fatal(err)
	}
	rows := [][]any{{1.5, 0}, {2.5, 1}, {nil, 1}, {4.0, nil}, {5.0, 2}, {6.0, 1}}
	for _, r := range rows {
		if err := f.AppendRow(r...); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestClassDistribution(t *testing.T) {
	got, err := ClassDistribution(labelled(t))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"0": 1, "1": 3, "2": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("distribution (-want +got):\n%s", diff)
	}
}

func TestDenseInstancesRoundTrip(t *testing.T) {
	src := labelled(t)
	inst, err := ToDenseInstances(src)
	if err != nil {
		t.Fatal(err)
	}
	if cols, rows := inst.Size(); cols != 2 || rows != 6 {
		t.Fatalf("size: %d x %d", cols, rows)
	}
	back, err := FromDenseInstances(inst)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, back.Schema().Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if !back.Column(0).IsNull(2) {
		t.Fatal("null float must survive as null")
	}
	if got := back.Column(1).Value(4); got != "2" {
		t.Fatalf("label: %v", got)
	}
}
