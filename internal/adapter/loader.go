package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/ingest"
)

const (
	defaultLoadTimeout = 30 * time.Second
	userAgent          = "anidex/1.0"
	maxBodyBytes       = 64 << 20
)

// LoadError describes a failed catalog load. It matches domain.ErrLoadFailure.
type LoadError struct {
	Source string
	Status int // HTTP status, 0 when not applicable
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load %s: unexpected status code: %d", e.Source, e.Status)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports domain.ErrLoadFailure for every LoadError
func (e *LoadError) Is(target error) bool {
	return target == domain.ErrLoadFailure
}

// Loader fetches the catalog document once from a file or http(s) URL.
// Failures are not retried.
type Loader struct {
	source     string
	opts       ingest.Options
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a loader for source with the given timeout
func NewLoader(source string, timeout time.Duration, opts ingest.Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	return &Loader{
		source: source,
		opts:   opts,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Source returns the configured location
func (l *Loader) Source() string {
	return l.source
}

// Fetch reads the raw document
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if isRemote(l.source) {
		return l.fetchHTTP(ctx)
	}
	return l.fetchFile()
}

// Load fetches and flattens the catalog. Fetch and parse failures are
// both reported as *LoadError.
func (l *Loader) Load(ctx context.Context) (ingest.Collection, error) {
	start := time.Now()
	data, err := l.Fetch(ctx)
	if err != nil {
		l.logger.Error("catalog load failed", "source", l.source, "error", err)
		return ingest.Collection{}, err
	}

	col, err := ingest.Parse(data, l.opts)
	if err != nil {
		l.logger.Error("catalog parse failed", "source", l.source, "error", err)
		return ingest.Collection{}, &LoadError{Source: l.source, Err: err}
	}

	featured := ""
	if col.Featured != nil {
		featured = col.Featured.Title
	}
	l.logger.Info("catalog loaded",
		"source", l.source,
		"count", len(col.Entries),
		"skipped", col.Skipped,
		"featured", featured,
		"elapsed", time.Since(start))
	return col, nil
}

func (l *Loader) fetchFile() ([]byte, error) {
	path, err := ExpandPath(l.source)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	return data, nil
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	l.logger.Debug("catalog request", "url", l.source)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Source: l.source,
			Status: resp.StatusCode,
			Err:    errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
