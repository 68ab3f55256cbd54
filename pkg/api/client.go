// Package api is the client of the backend that stores data files and
// creates datasets from them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wdm0006/dswizard/pkg/dataset"
	"github.com/wdm0006/dswizard/pkg/meta"
)

const DefaultTimeout = 30 * time.Second

type Client interface {
	// CreateDatasets posts a dataset-creation payload and returns the created
	// datasets: one, or two for a split.
	CreateDatasets(ctx context.Context, p dataset.Payload) ([]dataset.Record, error)

	// DataFile fetches one data file with its metadata. A missing file is
	// reported as meta.ErrNotFound.
	DataFile(ctx context.Context, id int64) (meta.DataFile, error)

	// DataFiles lists the data files of the key's owner.
	DataFiles(ctx context.Context) ([]meta.DataFile, error)
}

type Config struct {
	// Root is the API root, e.g. https://example.com/api.
	Root string
	// Key is sent with every request as the "key" query parameter.
	Key     string
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	// Registerer receives the submission metrics; nil leaves them unregistered.
	Registerer prometheus.Registerer
	Logger     *log.Logger
}

type client struct {
	httpclient *http.Client
	api        string
	key        string
	metrics    *metrics
	logger     *log.Logger
}

var _ meta.Provider = (*client)(nil)

func NewClient(cfg Config) (Client, error) {
	if cfg.Root == "" {
		return nil, errors.New("api: root is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &client{
		httpclient: hc,
		api:        strings.TrimSuffix(cfg.Root, "/"),
		key:        cfg.Key,
		metrics:    newMetrics(cfg.Registerer),
		logger:     logger,
	}, nil
}

// build URL with path. The backend expects a trailing slash.
func (c *client) apipath(path ...string) string {
	parts := []string{c.api}
	for _, p := range path {
		parts = append(parts, strings.Trim(p, "/"))
	}
	return strings.Join(parts, "/") + "/"
}

func (c *client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if c.key != "" {
		q := req.URL.Query()
		q.Set("key", c.key)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *client) CreateDatasets(ctx context.Context, p dataset.Payload) (recs []dataset.Record, err error) {
	start := time.Now()
	defer func() {
		c.metrics.latency.Observe(time.Since(start).Seconds())
		c.metrics.submissions.WithLabelValues(resultOf(err)).Inc()
	}()

	buf, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.apipath("dataset"), bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readResponse(resp, MessageFor{
		Status4xx: fmt.Sprintf("dataset request rejected (status code = %d)", resp.StatusCode),
		Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
	})
	if err != nil {
		c.logger.Printf("api: create datasets: %v", err)
		return nil, err
	}
	recs, err = dataset.DecodeRecords(body)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("api: created %d dataset(s) from data file %d", len(recs), p.Requests[0].Data)
	return recs, nil
}

func (c *client) DataFile(ctx context.Context, id int64) (meta.DataFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("data", strconv.FormatInt(id, 10)), nil)
	if err != nil {
		return meta.DataFile{}, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return meta.DataFile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return meta.DataFile{}, fmt.Errorf("data file %d: %w", id, meta.ErrNotFound)
	}
	var df meta.DataFile
	if err := unmarshalJsonResponse(resp, &df, MessageFor{
		Status4xx: fmt.Sprintf("cannot get data file %d (status code = %d)", id, resp.StatusCode),
		Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
	}); err != nil {
		return meta.DataFile{}, err
	}
	return df, nil
}

func (c *client) DataFiles(ctx context.Context) ([]meta.DataFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("data"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	files := make([]meta.DataFile, 0, 5)
	if err := unmarshalJsonResponse(resp, &files, MessageFor{
		Status4xx: fmt.Sprintf("cannot list data files (status code = %d)", resp.StatusCode),
		Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
	}); err != nil {
		return nil, err
	}
	return files, nil
}
