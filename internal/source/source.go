// Package source resolves the raw manifest text from the cache or the network.
package source

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jacksparrot/jsp/internal/cache"
	"github.com/jacksparrot/jsp/internal/fetch"
	"github.com/jacksparrot/jsp/internal/messages"
)

// Result is the manifest text returned by Load.
type Result struct {
	// Raw is the manifest text.
	Raw string
	// FromCache is true when Raw came from the store without a fetch.
	FromCache bool
	// Previous holds the cached text a refresh replaced, if any.
	Previous string
	// HadPrevious reports whether Previous is meaningful.
	HadPrevious bool
}

// Changed reports whether a refresh replaced different cached text.
func (r Result) Changed() bool {
	return !r.FromCache && (!r.HadPrevious || r.Previous != r.Raw)
}

// Source loads manifest text, preferring the cache unless a refresh is requested.
type Source struct {
	fetcher  fetch.Fetcher
	store    cache.Store
	url      string
	key      string
	validate func(raw string) error
	log      *zap.SugaredLogger
}

// Option configures a Source.
type Option func(*Source)

// WithValidator checks fetched text before it replaces the cached copy.
func WithValidator(fn func(raw string) error) Option {
	return func(s *Source) {
		s.validate = fn
	}
}

// New returns a Source reading url through fetcher and caching under cache.ManifestKey.
func New(fetcher fetch.Fetcher, store cache.Store, url string, logger *zap.SugaredLogger, opts ...Option) *Source {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Source{
		fetcher: fetcher,
		store:   store,
		url:     url,
		key:     cache.ManifestKey,
		log:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the manifest location.
func (s *Source) URL() string {
	return s.url
}

// Load returns cached manifest text when present and refresh is false.
// Otherwise it fetches the manifest and stores it before returning. Fetched text
// that fails the validator is returned as an error and never cached.
func (s *Source) Load(ctx context.Context, refresh bool) (Result, error) {
	if s.fetcher == nil || s.store == nil {
		return Result{}, errors.New(messages.SourceCollaboratorsRequired)
	}
	previous, hadPrevious, err := s.store.Get(s.key)
	if err != nil {
		return Result{}, fmt.Errorf(messages.SourceReadCacheFmt, err)
	}
	if hadPrevious && !refresh {
		s.log.Debugw("using cached manifest", "key", s.key, "bytes", len(previous))
		return Result{Raw: previous, FromCache: true, Previous: previous, HadPrevious: true}, nil
	}

	s.log.Infow("requesting package manifest", "url", s.url)
	raw, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return Result{}, err
	}
	if s.validate != nil {
		if err := s.validate(raw); err != nil {
			s.log.Warnw("fetched manifest rejected", "url", s.url, "error", err)
			return Result{}, fmt.Errorf(messages.SourceRejectedFmt, err)
		}
	}
	if err := s.store.Set(s.key, raw); err != nil {
		return Result{}, fmt.Errorf(messages.SourceWriteCacheFmt, err)
	}
	return Result{Raw: raw, Previous: previous, HadPrevious: hadPrevious}, nil
}
