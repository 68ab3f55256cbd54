package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wdm0006/dswizard/dataio"
	"github.com/wdm0006/dswizard/pkg/api"
	"github.com/wdm0006/dswizard/pkg/config"
	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
	"github.com/wdm0006/dswizard/pkg/preview"
	"github.com/wdm0006/dswizard/pkg/profile"
	"github.com/wdm0006/dswizard/pkg/wizard"
)

var (
	version = "0.1.0-dev"
)

type options struct {
	dryRun  bool
	preview bool
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to wizard recipe (JSON, YAML or TOML)")
	dryRun := flag.Bool("dry-run", false, "Print the dataset request instead of submitting it")
	doPreview := flag.Bool("preview", false, "Apply the request to the local data file and write one file per dataset")
	flag.Parse()

	if *showVersion {
		fmt.Println("dswizard", version)
		return
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := log.New(os.Stderr, "dswizard: ", log.LstdFlags)
	if err := run(context.Background(), cfg, options{dryRun: *dryRun, preview: *doPreview}, os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opt options, out io.Writer, logger *log.Logger) error {
	var client api.Client
	if cfg.API.Root != "" {
		var err error
		client, err = api.NewClient(api.Config{
			Root:       cfg.API.Root,
			Key:        cfg.API.Key,
			Timeout:    cfg.API.TimeoutDuration(),
			Registerer: prometheus.DefaultRegisterer,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
	}

	var provider meta.Provider = client
	var local *profile.Local
	if cfg.Source.Local() {
		local = profile.NewLocal(sources(cfg)...).SetLogger(logger)
		provider = local
	}
	src, siblings, err := meta.Load(ctx, provider, cfg.Source.ID)
	if err != nil {
		return err
	}

	w := wizard.New(src, siblings).SetLogger(logger)
	if cfg.DatasetName != "" {
		w.SetDatasetName(cfg.DatasetName)
	}
	if err := applySteps(w, cfg.Steps); err != nil {
		return err
	}
	logger.Printf("wizard %s: applied %v", w.ID(), w.Applied().Kinds())

	p, err := w.Payload()
	if err != nil {
		return err
	}
	if opt.preview {
		if local == nil {
			return errors.New("preview needs a local source")
		}
		if err := writePreviews(ctx, local, cfg, p, logger); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if opt.dryRun || client == nil {
		if !opt.dryRun {
			logger.Printf("no api root configured; printing the request")
		}
		return enc.Encode(p)
	}
	recs, err := w.Finish(ctx, client)
	if err != nil {
		return err
	}
	return enc.Encode(recs)
}

func sources(cfg *config.Config) []profile.Source {
	out := []profile.Source{{ID: cfg.Source.ID, Path: cfg.Source.Path, Options: cfg.Source.Options()}}
	for _, s := range cfg.Siblings {
		out = append(out, profile.Source{ID: s.ID, Path: s.Path, Options: s.Options()})
	}
	return out
}

func writePreviews(ctx context.Context, local *profile.Local, cfg *config.Config, p dataset.Payload, logger *log.Logger) error {
	f, err := local.Frame(ctx, cfg.Source.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Preview.Dir, 0o755); err != nil {
		return err
	}
	opt := preview.Options{Seed: cfg.Preview.Seed, Resolver: local}
	for _, req := range p.Requests {
		res, err := preview.Run(ctx, f, req, opt)
		if err != nil {
			return fmt.Errorf("preview %s: %w", req.Name, err)
		}
		path := filepath.Join(cfg.Preview.Dir, req.Name+dataio.Ext(cfg.Preview.Type))
		if err := dataio.Write(path, cfg.Preview.Type, res); err != nil {
			return err
		}
		logger.Printf("preview %s: %d rows, %d columns -> %s", req.Name, res.Rows(), res.Cols(), path)
	}
	return nil
}
