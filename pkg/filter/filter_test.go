package filter_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/filter"
	"github.com/wdm0006/dswizard/pkg/meta"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]filter.Kind{
		"column select": filter.KindColumnSelect,
		"column_select": filter.KindColumnSelect,
		"Split":         filter.KindSplit,
	} {
		got, ok := filter.ParseKind(in)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := filter.ParseKind("impute"); ok {
		t.Fatal("unknown kind accepted")
	}
}

func TestKindSet(t *testing.T) {
	s := filter.SetOf(filter.KindSplit, filter.KindNormalize)
	if !s.Has(filter.KindSplit) || s.Has(filter.KindMerge) {
		t.Fatalf("membership broken: %v", s)
	}
	if diff := cmp.Diff([]filter.Kind{filter.KindNormalize, filter.KindSplit}, s.Kinds()); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if !s.Without(filter.KindSplit).Without(filter.KindNormalize).Empty() {
		t.Fatal("expected empty set")
	}
}

func TestNoKindAllowedAfterItself(t *testing.T) {
	for _, k := range filter.Kinds {
		if filter.AllowedAfter(k).Has(k) {
			t.Fatalf("%s allowed after itself", k)
		}
	}
	if filter.AllowedAfter(filter.KindMerge).Has(filter.KindColumnSelect) {
		t.Fatal("column-select must not follow merge")
	}
	if filter.AllowedAfter(filter.KindBinarize).Has(filter.KindColumnSelect) {
		t.Fatal("column-select must not follow binarize")
	}
}

func TestCatalogGeneral(t *testing.T) {
	src := generalFile()
	c := filter.NewCatalog(src, nil)
	want := filter.SetOf(filter.KindColumnSelect, filter.KindNormalize, filter.KindShuffle, filter.KindBalance, filter.KindSplit)
	if c.Kinds() != want {
		t.Fatalf("kinds: got %v want %v", c.Kinds(), want)
	}
	if k, ok := c.Mandatory(); !ok || k != filter.KindColumnSelect {
		t.Fatalf("mandatory: %q %v", k, ok)
	}

	sibling := src
	sibling.ID, sibling.Name = 11, "iris2.csv"
	c = filter.NewCatalog(src, []meta.DataFile{sibling})
	if !c.Kinds().Has(filter.KindMerge) {
		t.Fatal("merge expected with a comparable sibling")
	}
	sibling.Meta.NumColumns = 4
	c = filter.NewCatalog(src, []meta.DataFile{sibling})
	if c.Kinds().Has(filter.KindMerge) {
		t.Fatal("merge not expected without a comparable sibling")
	}
}

func TestCatalogGeneralWithoutStats(t *testing.T) {
	src := generalFile()
	src.Meta.UniquesPerCol = nil
	src.Meta.LastColumnInfo.Distrib = nil
	c := filter.NewCatalog(src, nil)
	if c.Kinds().Has(filter.KindColumnSelect) || c.Kinds().Has(filter.KindBalance) {
		t.Fatalf("unexpected kinds: %v", c.Kinds())
	}
	if _, ok := c.Mandatory(); ok {
		t.Fatal("no mandatory step without column selection")
	}
}

func TestBalanceWithNullDistrib(t *testing.T) {
	var src meta.DataFile
	raw := `{"id": 3, "name": "d.csv", "file_format": "GENERAL",
		"meta": {"data_type": "GENERAL", "data_rows": 4,
		"last_column_info": {"classes": {"0": 2, "1": 2}, "distrib": null}}}`
	if err := json.Unmarshal([]byte(raw), &src); err != nil {
		t.Fatal(err)
	}
	c := filter.NewCatalog(src, nil)
	if !c.Kinds().Has(filter.KindBalance) {
		t.Fatalf("balance expected when distrib is sent as null: %v", c.Kinds())
	}
	b, _ := c.Lookup(filter.KindBalance)
	if got := b.(*filter.Balance).Distribution(); len(got) != 0 {
		t.Fatalf("distribution: %v", got)
	}
}

func TestCatalogTimeseries(t *testing.T) {
	src := meta.DataFile{ID: 1, Name: "s.ts", FileFormat: meta.Timeseries, Meta: meta.Meta{DataType: meta.Timeseries}}
	c := filter.NewCatalog(src, nil)
	if c.Kinds() != filter.SetOf(filter.KindBinarize, filter.KindSplit) {
		t.Fatalf("kinds: %v", c.Kinds())
	}
	src.Meta.BinaryInput = true
	if filter.NewCatalog(src, nil).Kinds() != filter.SetOf(filter.KindSplit) {
		t.Fatal("binary input must not be binarized again")
	}
	img := meta.DataFile{ID: 2, FileFormat: meta.Images}
	if filter.NewCatalog(img, nil).Kinds() != filter.SetOf(filter.KindSplit) {
		t.Fatal("images only split")
	}
}

func dump(f filter.Filter) []dataset.Fragment {
	acc := &dataset.Accumulator{}
	f.Dump(acc)
	return acc.Fragments()
}

func TestPlainAndConfiguredDumps(t *testing.T) {
	src := generalFile()
	if diff := cmp.Diff([]dataset.Fragment{dataset.Plain{Name: "normalize"}}, dump(filter.NewNormalize(src))); diff != "" {
		t.Fatal(diff)
	}
	b := filter.NewBalance(src)
	if b.Sample() != filter.Uniform {
		t.Fatalf("default sample: %q", b.Sample())
	}
	if err := b.SetSample("bogus"); err == nil {
		t.Fatal("unknown sampling accepted")
	}
	if err := b.SetSample(filter.Undersampling); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dataset.Fragment{dataset.Balance{Name: "balance", Sample: "undersampling"}}, dump(b)); diff != "" {
		t.Fatal(diff)
	}

	s1, s2 := src, src
	s1.ID, s2.ID = 20, 21
	m := filter.NewMerge(src, []meta.DataFile{s1, s2})
	if m.Target() != 20 || !m.Valid() {
		t.Fatalf("default target: %d", m.Target())
	}
	if err := m.SetTarget(99); err == nil {
		t.Fatal("non-candidate target accepted")
	}
	if err := m.SetTarget(21); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dataset.Fragment{dataset.Merge{Name: "merge", Datas: []int64{21}}}, dump(m)); diff != "" {
		t.Fatal(diff)
	}
}

func TestSplitDefaultsAndValidity(t *testing.T) {
	s := filter.NewSplit(generalFile())
	first, second := s.Names()
	if s.Percent() != 70 || first != "iris_train" || second != "iris_test" {
		t.Fatalf("defaults: %d %q %q", s.Percent(), first, second)
	}
	if s.Samples() != 105 {
		t.Fatalf("samples: %d", s.Samples())
	}
	s.SetNames("", "test")
	if s.Valid() {
		t.Fatal("empty name must invalidate split")
	}
	if err := s.SetPercent(100); err == nil {
		t.Fatal("percent 100 accepted")
	}
}

func TestColumnSelectDump(t *testing.T) {
	f := filter.NewColumnSelect(generalFile())
	if err := f.SetColumnType(1, meta.Ignored); err != nil {
		t.Fatal(err)
	}
	if err := f.TryAddOutputColumn(4); err != nil {
		t.Fatal(err)
	}
	if err := f.TryAddOutputColumn(2); err != nil {
		t.Fatal(err)
	}
	want := []dataset.Fragment{
		dataset.Columns{Name: "ignore", Columns: []int{1}},
		dataset.Columns{Name: "permute", Columns: []int{2, 4}},
		dataset.Columns{Name: "outputs", Columns: []int{4, 2}},
	}
	if diff := cmp.Diff(want, dump(f)); diff != "" {
		t.Fatalf("dump (-want +got):\n%s", diff)
	}
}

func TestColumnSelectOutputPicker(t *testing.T) {
	f := filter.NewColumnSelect(generalFile())

	if err := f.TryAddOutputColumn(2); err != nil {
		t.Fatal(err)
	}
	err := f.TryAddOutputColumn(0)
	if !errors.Is(err, filter.ErrCategoryMismatch) {
		t.Fatalf("expected category mismatch, got %v", err)
	}
	if diff := cmp.Diff([]filter.OutputColumn{{Name: "pl", Index: 2}}, f.Outputs()); diff != "" {
		t.Fatalf("outputs changed (-want +got):\n%s", diff)
	}
	if f.OutputCategory() != meta.CategoryCategorical {
		t.Fatalf("category: %q", f.OutputCategory())
	}

	// text columns share the categorical category
	if err := f.TryAddOutputColumn(3); err != nil {
		t.Fatal(err)
	}
	if err := f.TryAddOutputColumn(3); err != nil || len(f.Outputs()) != 2 {
		t.Fatalf("duplicate add must be a no-op: %v %v", err, f.Outputs())
	}

	if !f.RemoveOutputColumn(2) || !f.RemoveOutputColumn(3) {
		t.Fatal("remove failed")
	}
	if f.OutputCategory() != meta.CategoryNone || f.HasOutputs() {
		t.Fatal("removing the last output must release the lock")
	}
	if err := f.TryAddOutputColumn(0); err != nil {
		t.Fatalf("regression column after reset: %v", err)
	}
}

func TestColumnSelectRejectsIgnoredOutput(t *testing.T) {
	f := filter.NewColumnSelect(generalFile())
	if err := f.SetColumnType(0, meta.Ignored); err != nil {
		t.Fatal(err)
	}
	err := f.TryAddOutputColumn(0)
	var ce *filter.ColumnError
	if !errors.As(err, &ce) || !errors.Is(err, filter.ErrIgnoredColumn) || ce.Name != "sl" {
		t.Fatalf("expected ignored column error, got %v", err)
	}
	if f.HasOutputs() {
		t.Fatal("state changed on rejection")
	}
}

func TestColumnSelectTypeChanges(t *testing.T) {
	f := filter.NewColumnSelect(generalFile())
	if diff := cmp.Diff([]meta.ColumnType{meta.Categorical, meta.Numeric, meta.Ignored}, f.AllowedTypes(2)); diff != "" {
		t.Fatalf("allowed types (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]meta.ColumnType{meta.Text, meta.Ignored}, f.AllowedTypes(3)); diff != "" {
		t.Fatalf("locked column types (-want +got):\n%s", diff)
	}
	if err := f.SetColumnType(0, meta.Categorical); !errors.Is(err, filter.ErrColumnTypeNotAllowed) {
		t.Fatalf("numeric column cannot become categorical: %v", err)
	}

	if err := f.TryAddOutputColumn(2); err != nil {
		t.Fatal(err)
	}
	if err := f.SetColumnType(2, meta.Ignored); !errors.Is(err, filter.ErrIgnoreSelectedColumn) {
		t.Fatalf("expected ignore-selected error, got %v", err)
	}
	if err := f.SetColumnType(2, meta.Numeric); !errors.Is(err, filter.ErrCategoryLocked) {
		t.Fatalf("expected category-locked error, got %v", err)
	}
	if v, _ := f.ColumnType(2); v != meta.Categorical {
		t.Fatalf("type changed on rejection: %q", v)
	}
	if got := generalFile().Meta.Dtypes[1]; got != meta.Numeric {
		t.Fatal("source metadata mutated")
	}
}

func TestColumnSelectMoveOutput(t *testing.T) {
	f := filter.NewColumnSelect(generalFile())
	for _, c := range []int{2, 3, 4} {
		if err := f.TryAddOutputColumn(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.MoveOutputColumn(2, 0); err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, o := range f.Outputs() {
		got = append(got, o.Index)
	}
	if diff := cmp.Diff([]int{4, 2, 3}, got); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if err := f.MoveOutputColumn(0, 3); err == nil {
		t.Fatal("out of range move accepted")
	}
}

func TestCatalogKeepsInstances(t *testing.T) {
	c := filter.NewCatalog(generalFile(), nil)
	f, _ := c.Lookup(filter.KindSplit)
	if err := f.(*filter.Split).SetPercent(20); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Lookup(filter.KindSplit)
	if got != f || got.(*filter.Split).Percent() != 20 {
		t.Fatal("lookup must return the configured instance")
	}
	if _, ok := c.Lookup(filter.KindBinarize); ok {
		t.Fatal("inapplicable kind instantiated")
	}
}
