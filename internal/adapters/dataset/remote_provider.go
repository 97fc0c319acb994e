package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/platform/obs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RemoteDatasetProvider downloads a dataset file once and then serves it
// from the local copy.
//
// The download happens only when the local file does not exist. Transient
// HTTP failures are retried with exponential backoff. The provider is safe
// for concurrent use.
type RemoteDatasetProvider struct {
	session     *http.Client
	url         string
	path        string
	layout      Layout
	name        string
	maxAttempts int
	backoff     time.Duration

	mu sync.Mutex
}

type RemoteOption func(*RemoteDatasetProvider)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(o *RemoteDatasetProvider) { o.session = c }
}

// WithRetry sets the attempt budget and the initial backoff.
func WithRetry(maxAttempts int, backoff time.Duration) RemoteOption {
	return func(o *RemoteDatasetProvider) {
		o.maxAttempts = maxAttempts
		o.backoff = backoff
	}
}

func NewRemoteDatasetProvider(
	url string,
	path string,
	layout Layout,
	name string,
	opts ...RemoteOption,
) (*RemoteDatasetProvider, error) {
	if url == "" {
		return nil, errors.New("remote dataset provider: url is empty")
	}
	if path == "" {
		return nil, errors.New("remote dataset provider: local path is empty")
	}

	provider := &RemoteDatasetProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		url:         url,
		path:        path,
		layout:      layout,
		name:        name,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(provider)
	}
	if provider.maxAttempts < 1 {
		provider.maxAttempts = 1
	}

	return provider, nil
}

func (o *RemoteDatasetProvider) LoadDataset(ctx context.Context) (_ domain.Dataset, err error) {
	defer obs.Time(ctx, "dataset.remote.Load")(&err)

	if err := o.Ensure(ctx); err != nil {
		return domain.Dataset{}, err
	}

	return loadFile(o.path, o.layout, o.name)
}

// Ensure downloads the dataset unless the local file already exists.
func (o *RemoteDatasetProvider) Ensure(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := os.Stat(o.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ensure dataset: stat %q: %w", o.path, err)
	}

	log.Printf("downloading dataset url=%s file=%s", o.url, o.path)
	if err := o.download(ctx); err != nil {
		return fmt.Errorf("ensure dataset: download %s: %w", o.url, err)
	}
	log.Printf("downloaded dataset file=%s", o.path)

	return nil
}

// download writes to a temporary file first so a failed transfer never
// leaves a truncated dataset behind.
func (o *RemoteDatasetProvider) download(ctx context.Context) error {
	resp, err := o.doWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	dir := filepath.Dir(o.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(o.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), o.path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	return nil
}
