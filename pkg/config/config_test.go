package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/wdm0006/dswizard/pkg/filter"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadYAMLExample(t *testing.T) {
	cfg, err := Load(filepath.FromSlash("../../examples/recipe.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.FromSlash("../../examples")
	if cfg.Source.Path != filepath.Join(dir, "data", "iris.csv") || cfg.Source.ID != 1 {
		t.Fatalf("source: %+v", cfg.Source)
	}
	if cfg.Siblings[0].ID != 2 || cfg.Siblings[0].SampleRows != DefaultSampleRows {
		t.Fatalf("sibling: %+v", cfg.Siblings[0])
	}
	if cfg.Preview.Dir != filepath.Join(dir, "out") || cfg.Preview.Seed != 7 {
		t.Fatalf("preview: %+v", cfg.Preview)
	}
	var kinds []filter.Kind
	for _, st := range cfg.Steps {
		k, _, err := st.Kind()
		if err != nil {
			t.Fatal(err)
		}
		kinds = append(kinds, k)
	}
	want := []filter.Kind{filter.KindColumnSelect, filter.KindSplit, filter.KindNormalize, filter.KindBalance}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	_, split, _ := cfg.Steps[1].Kind()
	if split.Percent != 80 || split.Train != "iris_80" {
		t.Fatalf("split: %+v", split)
	}
	_, cs, _ := cfg.Steps[0].Kind()
	if diff := cmp.Diff([]string{"class"}, cs.Outputs); diff != "" {
		t.Fatalf("outputs (-want +got):\n%s", diff)
	}
	if cfg.API.TimeoutDuration() != DefaultTimeout {
		t.Fatalf("timeout: %v", cfg.API.TimeoutDuration())
	}
}

func TestLoadTOMLExample(t *testing.T) {
	cfg, err := Load(filepath.FromSlash("../../examples/recipe.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source.ID != 42 || cfg.Source.Local() {
		t.Fatalf("source: %+v", cfg.Source)
	}
	if cfg.API.TimeoutDuration() != 10*time.Second {
		t.Fatalf("timeout: %v", cfg.API.TimeoutDuration())
	}
	_, split, err := cfg.Steps[1].Kind()
	if err != nil {
		t.Fatal(err)
	}
	if split.Percent != filter.DefaultSplitPercent {
		t.Fatalf("default percent: %d", split.Percent)
	}
}

func TestLoadJSON(t *testing.T) {
	p := write(t, "r.json", `{"source": {"path": "/data/a.csv", "delimiter": ";"},
		"steps": [{"balance": {}}, {"merge": {"target": 3}}]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Source.Options().Delimiter; got != ';' {
		t.Fatalf("delimiter: %q", got)
	}
	_, b, _ := cfg.Steps[0].Kind()
	if b.Sample != string(filter.Uniform) {
		t.Fatalf("default sample: %q", b.Sample)
	}
	_, m, _ := cfg.Steps[1].Kind()
	if m.Target != 3 {
		t.Fatalf("target: %d", m.Target)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	p := write(t, "bad.yaml", `
api:
  timeout: soon
source:
  id: 0
steps:
  - split: {percent: 120}
  - balance: {sample: random}
  - sharpen: {}
  - normalize: {}
    shuffle: {}
  - split: {}
preview:
  type: xlsx
`)
	_, err := Load(p)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	var paths []string
	for _, e := range verrs {
		paths = append(paths, e.Path)
	}
	want := []string{
		"api.timeout", "source", "api.root", "api.key",
		"steps[0].percent", "steps[1].sample", "steps[2]", "steps[3]", "steps[4]",
		"preview.type",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
}

func TestUnsupportedExtension(t *testing.T) {
	if _, err := Load(write(t, "r.ini", "")); err == nil {
		t.Fatal("expected error")
	}
}
