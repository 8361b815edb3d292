// Package fingov governs how much scraped financial content is emitted
// to a downstream tool caller under one shared, process-wide output
// budget. Each governed call classifies the request's urgency, fetches
// through a fallback chain of candidate sources, scores the result,
// picks a degradation level, renders within a unit budget and commits
// the charge against the shared ledger.
package fingov

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Governor runs the governed-call pipeline for every registered category
// profile. Safe for concurrent use; the ledger is the only shared
// mutable state between calls.
type Governor struct {
	cfg      Config
	fetcher  Fetcher
	profiles map[string]*Profile
	ledger   *Ledger
	meter    Meter
	cache    Cache
	policy   Policy

	engine    *Engine
	pipelines map[string]*pipeline
}

// pipeline bundles the per-category components built from one profile.
type pipeline struct {
	profile    *Profile
	classifier *Classifier
	assessor   *Assessor
	renderer   *Renderer
}

// Option configures a Governor.
type Option func(*Governor)

// WithLedger sets a shared ledger, letting several governors draw on the
// same budget.
func WithLedger(l *Ledger) Option {
	return func(g *Governor) { g.ledger = l }
}

// WithMeter sets the telemetry meter.
func WithMeter(m Meter) Option {
	return func(g *Governor) { g.meter = m }
}

// WithCache sets the result cache.
func WithCache(c Cache) Option {
	return func(g *Governor) { g.cache = c }
}

// WithPolicy forces one chain-ordering policy for every call instead of
// the per-query heuristic.
func WithPolicy(p Policy) Option {
	return func(g *Governor) { g.policy = p }
}

// WithProfiles replaces the built-in category profiles.
func WithProfiles(profiles map[string]*Profile) Option {
	return func(g *Governor) { g.profiles = profiles }
}

// New creates a Governor with the given config and fetch collaborator.
// Default components (built-in profiles, fresh ledger, noop meter, no
// cache) are used unless overridden via options.
func New(cfg Config, fetcher Fetcher, opts ...Option) (*Governor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fingov: a fetcher is required")
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Governor{
		cfg:     cfg,
		fetcher: fetcher,
	}

	for _, opt := range opts {
		opt(g)
	}

	// Apply defaults after options.
	if g.profiles == nil {
		g.profiles = BuiltinProfiles()
	}
	if g.ledger == nil {
		g.ledger = NewLedger(cfg.Capacity)
	}
	if g.meter == nil {
		g.meter = &noopMeter{}
	}

	if _, ok := g.profiles[cfg.DefaultCategory]; !ok {
		return nil, fmt.Errorf("fingov: default category %q has no profile", cfg.DefaultCategory)
	}

	g.engine = NewEngine(cfg)
	g.pipelines = make(map[string]*pipeline, len(g.profiles))
	for name, p := range g.profiles {
		g.pipelines[name] = &pipeline{
			profile:    p,
			classifier: NewClassifier(p, cfg.PerCallCap),
			assessor:   NewAssessor(p, cfg),
			renderer:   NewRenderer(p, cfg),
		}
	}

	return g, nil
}

// StartSession is the session lifecycle signal: it resets the shared
// ledger so a new logical session starts with the full budget.
func (g *Governor) StartSession() {
	g.ledger.Reset()
}

// Ledger exposes the shared ledger for status queries.
func (g *Governor) Ledger() *Ledger { return g.ledger }

// Profile returns the registered profile for a category, if any.
func (g *Governor) Profile(category string) (*Profile, bool) {
	p, ok := g.profiles[category]
	return p, ok
}

// Govern runs one governed call: acquire a sample through the fallback
// chain, assess it, decide a degradation level, render within budget and
// commit the charge. The only propagated failure is chain exhaustion;
// empty input and degraded content resolve into the returned record.
func (g *Governor) Govern(ctx context.Context, req Request) (EmissionRecord, error) {
	executionID := uuid.New().String()

	pl, ok := g.pipelines[g.categoryFor(req)]
	if !ok {
		return EmissionRecord{}, fmt.Errorf("%w: %q", ErrNoProfile, req.Category)
	}

	// Empty requests resolve locally, before any fetch.
	if isBlank(req.Query) {
		return g.emit(pl, req, EmissionRecord{
			Decision: DecisionEmpty,
			Text:     pl.renderer.Render(DecisionEmpty, req, "", 0),
			Governing: GoverningInfo{
				ExecutionID: executionID,
				Priority:    PriorityLow,
			},
		}, true, nil), nil
	}

	priority := pl.classifier.Classify(req.Query)
	_, remaining := g.ledger.Remaining()
	unitBudget := pl.classifier.RecommendedUnits(req.Query, priority, remaining)

	sample, attempts, fromCache, err := g.acquire(ctx, pl, req, priority, executionID)
	if err != nil {
		// A cancelled call must not commit any charge.
		if ctx.Err() != nil {
			return EmissionRecord{}, err
		}
		rec := g.emit(pl, req, EmissionRecord{
			Decision: DecisionErrorEcho,
			Text:     pl.renderer.Render(DecisionErrorEcho, req, "", 0),
			Governing: GoverningInfo{
				ExecutionID: executionID,
				Priority:    priority,
				Attempts:    attempts,
			},
		}, false, err)
		return rec, err
	}

	info := GoverningInfo{
		ExecutionID: executionID,
		Priority:    priority,
		SourceLabel: sample.SourceLabel,
		Attempts:    attempts,
		FromCache:   fromCache,
	}

	// Pass-through mode: raw accepted content, zero charge.
	if !g.cfg.Enabled {
		return g.emit(pl, req, EmissionRecord{
			Decision:  DecisionFiltered,
			Text:      sample.RawText,
			Governing: info,
		}, true, nil), nil
	}

	assessment := pl.assessor.Assess(sample.RawText)

	// Fresh snapshot: fetch latency may have let other calls commit.
	_, remaining = g.ledger.Remaining()

	decision := g.engine.Decide(req, sample.RawText, assessment, remaining)
	text := pl.renderer.Render(decision, req, sample.RawText, unitBudget)
	text = pl.renderer.HardCap(text, remaining)

	var cost int64
	if !decision.Terminal() {
		cost = pl.assessor.EstimateUnits(text)
	}

	if g.cache != nil && !fromCache {
		_ = g.cache.Put(ctx, req.SessionID, g.cacheKey(req), sample)
	}

	info.SourceLabel = sample.SourceLabel
	return g.emit(pl, req, EmissionRecord{
		Decision:       decision,
		Text:           text,
		EstimatedUnits: cost,
		Governing:      info,
	}, true, nil), nil
}

// acquire returns an accepted sample: from the cache when possible, else
// by running the fallback chain.
func (g *Governor) acquire(ctx context.Context, pl *pipeline, req Request, priority Priority, executionID string) (ContentSample, int, bool, error) {
	if g.cache != nil {
		if sample, ok, err := g.cache.Get(ctx, req.SessionID, g.cacheKey(req)); err == nil && ok {
			sample.SourceLabel = "cache (" + sample.SourceLabel + ")"
			return sample, 0, true, nil
		}
	}

	chain := BuildChain(req, pl.profile, priority, g.policy)
	if len(chain) == 0 {
		return ContentSample{}, 0, false, fmt.Errorf("%w: query %q", ErrNoSources, req.Query)
	}

	var lastErr error
	lastLabel := ""

	for i, cand := range chain {
		if err := ctx.Err(); err != nil {
			return ContentSample{}, i, false, err
		}

		start := time.Now()
		sample, err := g.fetcher.Fetch(ctx, cand.Locator)
		duration := time.Since(start)

		if err != nil {
			g.meter.OnFetch(FetchEvent{
				ExecutionID: executionID,
				Query:       req.Query,
				Category:    pl.profile.Category,
				Source:      cand.Label,
				Kind:        cand.Kind,
				Attempt:     i + 1,
				Duration:    duration,
				Err:         err,
			})
			lastErr, lastLabel = err, cand.Label
			continue
		}

		rejected := g.shouldTryNext(pl, sample.RawText)
		g.meter.OnFetch(FetchEvent{
			ExecutionID: executionID,
			Query:       req.Query,
			Category:    pl.profile.Category,
			Source:      cand.Label,
			Kind:        cand.Kind,
			Attempt:     i + 1,
			Duration:    duration,
			Rejected:    rejected,
		})

		if rejected {
			lastErr = fmt.Errorf("%w: %s returned %d chars", ErrLowQuality, cand.Label, len(sample.RawText))
			lastLabel = cand.Label
			continue
		}

		if sample.SourceLabel == "" {
			sample.SourceLabel = cand.Label
		}
		return sample, i + 1, false, nil
	}

	if lastErr == nil {
		lastErr = ErrChainExhausted
	}
	return ContentSample{}, len(chain), false, &ChainError{
		Err:      lastErr,
		Query:    req.Query,
		Category: pl.profile.Category,
		Source:   lastLabel,
		Attempts: len(chain),
	}
}

// shouldTryNext is the runner's acceptance gate: reject samples that are
// too short, look like an error page, or carry no domain signal while
// there is still enough headroom to afford another fetch.
func (g *Governor) shouldTryNext(pl *pipeline, content string) bool {
	if len(content) < g.cfg.MinContentLen {
		return true
	}

	assessment := pl.assessor.Assess(content)
	if assessment.IsErrorPage {
		return true
	}

	if !assessment.HasDomainSignal {
		_, remaining := g.ledger.Remaining()
		if remaining > g.cfg.SwitchThreshold {
			return true
		}
	}
	return false
}

// emit commits the record's charge, publishes telemetry and returns the
// record. Commit happens only here, strictly after a completed render.
func (g *Governor) emit(pl *pipeline, req Request, rec EmissionRecord, success bool, cause error) EmissionRecord {
	g.ledger.Commit(rec.EstimatedUnits)
	_, remaining := g.ledger.Remaining()

	g.meter.OnEmission(EmissionEvent{
		ExecutionID:    rec.Governing.ExecutionID,
		Query:          req.Query,
		Category:       pl.profile.Category,
		Priority:       rec.Governing.Priority,
		Decision:       rec.Decision,
		Source:         rec.Governing.SourceLabel,
		EstimatedUnits: rec.EstimatedUnits,
		Remaining:      remaining,
		FromCache:      rec.Governing.FromCache,
		Success:        success,
		Err:            cause,
	})
	return rec
}

func (g *Governor) categoryFor(req Request) string {
	if req.Category == "" {
		return g.cfg.DefaultCategory
	}
	return req.Category
}

func (g *Governor) cacheKey(req Request) string {
	return g.categoryFor(req) + ":" + req.Region + ":" + strings.ToLower(strings.TrimSpace(req.Query))
}

// noopMeter is the default meter; it drops every event.
type noopMeter struct{}

func (m *noopMeter) OnFetch(FetchEvent)       {}
func (m *noopMeter) OnEmission(EmissionEvent) {}

// IsExhausted reports whether an error from Govern is a chain
// exhaustion.
func IsExhausted(err error) bool {
	var ce *ChainError
	return errors.As(err, &ce) || errors.Is(err, ErrChainExhausted)
}
