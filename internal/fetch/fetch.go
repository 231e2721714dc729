// Package fetch downloads raw manifest text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/jacksparrot/jsp/internal/messages"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 2
	// DefaultMaxBytes caps the manifest size.
	DefaultMaxBytes = int64(1 << 20)

	userAgent = "jsp"
)

var defaultRetryDelay = 250 * time.Millisecond

// Fetcher retrieves manifest text from a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.FetchUnexpectedStatusFmt, e.URL, e.Status)
}

// Options configures an HTTPFetcher. Zero values select defaults.
type Options struct {
	Client     *http.Client
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	MaxBytes   int64
	Logger     *zap.SugaredLogger
}

// HTTPFetcher fetches http(s) URLs with bounded retries and reads file:// URLs
// and bare paths from disk.
type HTTPFetcher struct {
	client     *http.Client
	retries    int
	retryDelay time.Duration
	maxBytes   int64
	log        *zap.SugaredLogger
}

// NewHTTPFetcher builds a fetcher from opts.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HTTPFetcher{
		client:     client,
		retries:    retries,
		retryDelay: delay,
		maxBytes:   maxBytes,
		log:        logger,
	}
}

// Fetch returns the body at location.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return "", errors.New(messages.FetchLocationRequired)
	}
	parsed, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf(messages.FetchInvalidLocationFmt, location, err)
	}
	switch parsed.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, location)
	case "file":
		return f.readFile(parsed.Path)
	case "":
		return f.readFile(location)
	default:
		return "", fmt.Errorf(messages.FetchUnsupportedSchemeFmt, parsed.Scheme, location)
	}
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, location string) (string, error) {
	attempt := 0
	operation := func() (string, error) {
		attempt++
		body, err := f.fetchOnce(ctx, location)
		if err == nil {
			return body, nil
		}
		if !shouldRetry(err) {
			return "", backoff.Permanent(err)
		}
		f.log.Debugw("manifest fetch failed", "url", location, "attempt", attempt, "error", err)
		return "", err
	}
	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(f.retryDelay)),
		backoff.WithMaxTries(uint(f.retries+1)),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Unwrap()
		}
		return "", err
	}
	f.log.Debugw("manifest fetched", "url", location, "bytes", len(body), "attempts", attempt)
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf(messages.FetchCreateRequestFmt, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return "", fmt.Errorf(messages.FetchTimeoutFmt, location, err)
		}
		return "", fmt.Errorf(messages.FetchFailedFmt, location, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: location, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf(messages.FetchFailedFmt, location, err)
	}
	if int64(len(data)) > f.maxBytes {
		return "", fmt.Errorf(messages.FetchTooLargeFmt, location, f.maxBytes)
	}
	return string(data), nil
}

func (f *HTTPFetcher) readFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf(messages.FetchReadFileFmt, path, err)
	}
	if info.Size() > f.maxBytes {
		return "", fmt.Errorf(messages.FetchTooLargeFmt, path, f.maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf(messages.FetchReadFileFmt, path, err)
	}
	return string(data), nil
}

// shouldRetry reports whether err is transient: a network error or a 5xx response.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 && statusErr.StatusCode <= 599
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isTimeoutError reports whether err is a network timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
