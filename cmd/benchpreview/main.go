package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/frame"
	"github.com/wdm0006/dswizard/pkg/preview"
)

type genOptions struct {
	rows, fcols, icols, classes int
	missp                       float64
	seed                        int64
}

// generate builds a frame of float and int features followed by an integer
// label column.
func generate(o genOptions) (*frame.Frame, error) {
	var fields []frame.Field
	for i := 0; i < o.fcols; i++ {
		fields = append(fields, frame.Field{Name: fmt.Sprintf("f%d", i), Type: frame.TypeFloat})
	}
	for i := 0; i < o.icols; i++ {
		fields = append(fields, frame.Field{Name: fmt.Sprintf("i%d", i), Type: frame.TypeInt})
	}
	fields = append(fields, frame.Field{Name: "label", Type: frame.TypeInt})
	f, err := frame.New(frame.Schema{Fields: fields})
	if err != nil {
		return nil, err
	}
	rnd := rand.New(rand.NewSource(o.seed))
	row := make([]any, len(fields))
	for r := 0; r < o.rows; r++ {
		for c, fd := range fields[:len(fields)-1] {
			row[c] = nil
			if rnd.Float64() < o.missp {
				continue
			}
			if fd.Type == frame.TypeFloat {
				row[c] = rnd.Float64() * 100
			} else {
				row[c] = int64(rnd.Intn(100))
			}
		}
		// skewed classes so balance has work to do
		row[len(row)-1] = int64(math.Sqrt(float64(rnd.Intn(o.classes * o.classes))))
		if err := f.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// request is the training half of a typical chain over a generated frame.
func request(o genOptions, sample string, percent int) dataset.Request {
	permute := make([]int, o.icols)
	for i := range permute {
		permute[i] = o.fcols + i
	}
	yes := true
	return dataset.Request{
		Name: "bench_train",
		Filters: []dataset.Fragment{
			dataset.Split{Name: dataset.NameSplit, Start: 0, End: percent},
			dataset.Balance{Name: dataset.NameBalance, Sample: sample},
			dataset.Plain{Name: dataset.NameNormalize},
			dataset.Plain{Name: dataset.NameShuffle},
			dataset.NewColumns(dataset.NameIgnore, nil),
			dataset.NewColumns(dataset.NamePermute, permute),
			dataset.NewColumns(dataset.NameOutputs, []int{o.fcols + o.icols}),
		},
		LastColumnIsOutput: &yes,
	}
}

func main() {
	var (
		rows    = flag.Int("rows", 1_000_000, "total rows to generate")
		fcols   = flag.Int("float-cols", 4, "number of float columns")
		icols   = flag.Int("int-cols", 2, "number of int columns")
		classes = flag.Int("classes", 3, "number of label classes")
		missp   = flag.Float64("missing", 0.05, "probability of missing values in each feature cell")
		sample  = flag.String("sample", "undersampling", "balance strategy")
		percent = flag.Int("percent", 70, "split percent")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()
	if *classes < 1 {
		fmt.Fprintln(os.Stderr, "classes must be positive")
		os.Exit(2)
	}

	o := genOptions{rows: *rows, fcols: *fcols, icols: *icols, classes: *classes, missp: *missp, seed: *seed}
	f, err := generate(o)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	req := request(o, *sample, *percent)

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	out, err := preview.Run(context.Background(), f, req, preview.Options{Seed: *seed})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(*rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  *rows,
		"rows_out":              out.Rows(),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"cols":                  map[string]int{"float": *fcols, "int": *icols},
		"sample":                *sample,
		"missing_prob":          *missp,
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d -> %d\n", *rows, out.Rows())
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", rowsPerSec)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
