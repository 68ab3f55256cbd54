package preview

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/frame"
)

// sample has columns a (float), b (int) and label (int); six rows of class 0
// then four of class 1.
func sample(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(frame.Schema{Fields: []frame.Field{
		{Name: "a", Type: frame.TypeFloat},
		{Name: "b", Type: frame.TypeInt},
		{Name: "label", Type: frame.TypeInt},
	}})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		label := 0
		if i >= 6 {
			label = 1
		}
		if err := f.AppendRow(float64(i), i%3, label); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func run(t *testing.T, f *frame.Frame, opt Options, frags ...dataset.Fragment) *frame.Frame {
	t.Helper()
	yes := true
	out, err := Run(context.Background(), f, dataset.Request{Filters: frags, LastColumnIsOutput: &yes}, opt)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func column(f *frame.Frame, name string) []any {
	c, _ := f.ColumnByName(name)
	out := make([]any, c.Len())
	for r := range out {
		out[r] = c.Value(r)
	}
	return out
}

func TestColumnFragments(t *testing.T) {
	f := sample(t)
	got := run(t, f, Options{},
		dataset.NewColumns(dataset.NameIgnore, []int{0}),
		dataset.NewColumns(dataset.NamePermute, []int{1}),
		dataset.NewColumns(dataset.NameOutputs, nil),
	)
	if diff := cmp.Diff([]string{"b", "label"}, got.Schema().Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if got.Column(0).Type() != frame.TypeString || got.Column(0).Value(4) != "1" {
		t.Fatalf("permuted column: %v %v", got.Column(0).Type(), got.Column(0).Value(4))
	}

	got = run(t, f, Options{},
		dataset.NewColumns(dataset.NameIgnore, nil),
		dataset.NewColumns(dataset.NamePermute, nil),
		dataset.NewColumns(dataset.NameOutputs, []int{2, 0}),
	)
	if diff := cmp.Diff([]string{"b", "label", "a"}, got.Schema().Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}

func TestColumnOutOfRange(t *testing.T) {
	_, err := Build(dataset.Request{Filters: []dataset.Fragment{dataset.NewColumns(dataset.NameIgnore, []int{3})}}, sample(t).Schema(), Options{})
	if err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestNormalizeSkipsLabel(t *testing.T) {
	got := run(t, sample(t), Options{}, dataset.Plain{Name: dataset.NameNormalize})
	var sum float64
	for _, v := range column(got, "a") {
		sum += v.(float64)
	}
	if math.Abs(sum) > 1e-9 {
		t.Fatalf("normalized column mean: %v", sum/10)
	}
	if got.Column(1).Type() != frame.TypeFloat {
		t.Fatal("integer feature must be normalized")
	}
	if diff := cmp.Diff(column(sample(t), "label"), column(got, "label")); diff != "" {
		t.Fatalf("label changed (-want +got):\n%s", diff)
	}
}

func TestSplitRanges(t *testing.T) {
	f := sample(t)
	train := run(t, f, Options{}, dataset.Split{Name: dataset.NameSplit, Start: 0, End: 70})
	test := run(t, f, Options{}, dataset.Split{Name: dataset.NameSplit, Start: 70, End: 100})
	if train.Rows() != 7 || test.Rows() != 3 {
		t.Fatalf("split rows: %d + %d", train.Rows(), test.Rows())
	}
	if test.Column(0).Value(0) != 7.0 {
		t.Fatalf("test starts at row %v", test.Column(0).Value(0))
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	f := sample(t)
	a := run(t, f, Options{Seed: 42}, dataset.Plain{Name: dataset.NameShuffle})
	b := run(t, f, Options{Seed: 42}, dataset.Plain{Name: dataset.NameShuffle})
	if diff := cmp.Diff(column(a, "a"), column(b, "a")); diff != "" {
		t.Fatalf("same seed, different order (-a +b):\n%s", diff)
	}
	seen := map[any]bool{}
	for _, v := range column(a, "a") {
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("shuffle lost rows: %v", column(a, "a"))
	}
}

func TestBalance(t *testing.T) {
	f := sample(t)
	for sample, want := range map[string]int{"undersampling": 8, "oversampling": 12, "uniform": 12} {
		got := run(t, f, Options{}, dataset.Balance{Name: dataset.NameBalance, Sample: sample})
		if got.Rows() != want {
			t.Fatalf("%s: %d rows, want %d", sample, got.Rows(), want)
		}
		groups, _ := got.Groups(2)
		if len(groups["0"]) != len(groups["1"]) {
			t.Fatalf("%s: unbalanced %d/%d", sample, len(groups["0"]), len(groups["1"]))
		}
	}
	if _, err := Run(context.Background(), f, dataset.Request{Filters: []dataset.Fragment{
		dataset.Balance{Name: dataset.NameBalance, Sample: "random"}}}, Options{}); err == nil {
		t.Fatal("unknown strategy accepted")
	}
}

type frames map[int64]*frame.Frame

func (m frames) Frame(ctx context.Context, id int64) (*frame.Frame, error) {
	f, ok := m[id]
	if !ok {
		return nil, errors.New("missing")
	}
	return f, nil
}

func TestMerge(t *testing.T) {
	f := sample(t)
	got := run(t, f, Options{Resolver: frames{4: sample(t)}}, dataset.Merge{Name: dataset.NameMerge, Datas: []int64{4}})
	if got.Rows() != 20 {
		t.Fatalf("rows: %d", got.Rows())
	}
	if _, err := Build(dataset.Request{Filters: []dataset.Fragment{dataset.Merge{Name: dataset.NameMerge, Datas: []int64{4}}}}, f.Schema(), Options{}); err == nil {
		t.Fatal("merge without resolver accepted")
	}
}

func TestBinarizeUnsupported(t *testing.T) {
	_, err := Build(dataset.Request{Filters: []dataset.Fragment{dataset.Plain{Name: dataset.NameBinarize}}}, sample(t).Schema(), Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestBuildStepNames(t *testing.T) {
	pl, err := Build(dataset.Request{Filters: []dataset.Fragment{
		dataset.Split{Name: dataset.NameSplit, Start: 0, End: 70},
		dataset.Plain{Name: dataset.NameNormalize},
		dataset.NewColumns(dataset.NameIgnore, nil),
	}}, sample(t).Schema(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"split", "normalize", "ignore"}, pl.Steps()); diff != "" {
		t.Fatalf("steps (-want +got):\n%s", diff)
	}
}
