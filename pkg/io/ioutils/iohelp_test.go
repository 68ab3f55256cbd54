package ioutils

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTripCompressed(t *testing.T) {
	for _, name := range []string{"plain.csv", "packed.csv.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			w, err := CreateMaybeCompressed(path)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := io.WriteString(w, "a,b\n1,2\n"); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			r, err := OpenMaybeCompressed(path)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = r.Close() }()
			b, err := io.ReadAll(r)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != "a,b\n1,2\n" {
				t.Fatalf("got %q", b)
			}
		})
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := OpenMaybeCompressed(filepath.Join(t.TempDir(), "nope.csv")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestTypeOf(t *testing.T) {
	for path, want := range map[string]string{
		"a.csv":        "csv",
		"a.csv.gz":     "csv",
		"a.jsonl":      "jsonl",
		"a.ndjson.gz":  "jsonl",
		"a.parquet":    "parquet",
		"no-extension": "csv",
	} {
		if got := TypeOf(path); got != want {
			t.Fatalf("TypeOf(%q) = %q, want %q", path, got, want)
		}
	}
}
