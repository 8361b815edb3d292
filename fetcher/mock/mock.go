// Package mock provides a scripted Fetcher for tests and examples.
package mock

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/veldt-io/fingov"
)

// Fetcher is a scripted fetch collaborator. By default every locator
// yields the same canned sample; options script per-locator content,
// failures and latency.
type Fetcher struct {
	name      string
	content   string
	latency   time.Duration
	staticErr error
	failFirst int64 // number of leading calls that fail
	byLocator map[string]Response
	callCount atomic.Int64
}

// Response scripts the outcome for one locator substring.
type Response struct {
	Content string
	Err     error
}

var _ fingov.Fetcher = (*Fetcher)(nil)

// Option configures a mock Fetcher.
type Option func(*Fetcher)

// New creates a mock fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		name:      "mock",
		content:   "price: $100.00, market cap: $1B, volume: 2M shares trading",
		byLocator: make(map[string]Response),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithName sets the fetcher name.
func WithName(name string) Option {
	return func(f *Fetcher) { f.name = name }
}

// WithContent sets the default canned content.
func WithContent(content string) Option {
	return func(f *Fetcher) { f.content = content }
}

// WithLatency adds artificial latency to every fetch.
func WithLatency(d time.Duration) Option {
	return func(f *Fetcher) { f.latency = d }
}

// WithError makes every fetch fail with err.
func WithError(err error) Option {
	return func(f *Fetcher) { f.staticErr = err }
}

// WithFailFirst makes the first n fetches fail with err.
func WithFailFirst(n int, err error) Option {
	return func(f *Fetcher) {
		f.failFirst = int64(n)
		f.staticErr = err
	}
}

// WithResponse scripts the outcome for any locator containing the given
// substring. Scripted locators win over the default content.
func WithResponse(locatorSubstring string, resp Response) Option {
	return func(f *Fetcher) { f.byLocator[locatorSubstring] = resp }
}

func (f *Fetcher) Name() string { return f.name }

// CallCount returns how many fetches have been attempted.
func (f *Fetcher) CallCount() int { return int(f.callCount.Load()) }

func (f *Fetcher) Fetch(ctx context.Context, locator string) (fingov.ContentSample, error) {
	n := f.callCount.Add(1)

	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return fingov.ContentSample{}, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return fingov.ContentSample{}, err
	}

	for sub, resp := range f.byLocator {
		if strings.Contains(locator, sub) {
			if resp.Err != nil {
				return fingov.ContentSample{}, resp.Err
			}
			return fingov.ContentSample{SourceLabel: f.name, RawText: resp.Content}, nil
		}
	}

	if f.staticErr != nil && (f.failFirst == 0 || n <= f.failFirst) {
		return fingov.ContentSample{}, f.staticErr
	}

	return fingov.ContentSample{SourceLabel: f.name, RawText: f.content}, nil
}
