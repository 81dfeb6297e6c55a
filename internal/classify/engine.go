// Package classify implements the semantic classification engine: it
// normalizes a raw goods description, embeds it, retrieves the nearest
// reference catalog entry by cosine similarity, and applies the
// review-threshold decision policy.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/cache"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/normalizer"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
)

// DefaultReviewThreshold is the score below which a decision is flagged for
// human review.
const DefaultReviewThreshold = 0.6

// Decision is the immutable outcome of one Classify call. When the input
// normalizes to nothing, MatchedDesc, HSCode and RiskFlag stay empty,
// Confidence is 0 and HumanReview is set.
type Decision struct {
	RawInput    string  `json:"raw_input"`
	Normalized  string  `json:"normalized"`
	MatchedDesc string  `json:"matched_desc"`
	Confidence  float64 `json:"confidence"`
	HSCode      string  `json:"hs_code"`
	RiskFlag    string  `json:"risk_flag"`
	HumanReview bool    `json:"human_review"`
}

// Matched reports whether the decision carries a catalog match.
func (d Decision) Matched() bool {
	return d.HSCode != ""
}

// EngineConfig holds classification engine settings.
type EngineConfig struct {
	// ReviewThreshold defaults to DefaultReviewThreshold when zero or
	// negative. It compares against the raw, unrounded similarity score.
	ReviewThreshold float64

	// Cache, when set, memoizes decisions keyed by normalized text.
	Cache    cache.Client
	CacheTTL time.Duration
}

// Engine composes Normalizer -> Embedding Provider -> Matcher into one
// classify operation. It is an explicit per-process instance; the catalog is
// read-only, so one Engine serves concurrent callers without coordination.
type Engine struct {
	logger    *observability.Logger
	embedder  embedding.Embedder
	catalog   *catalog.Catalog
	threshold float64
	cache     cache.Client
	cacheTTL  time.Duration
}

// NewEngine creates a classification engine over a pre-built catalog.
func NewEngine(logger *observability.Logger, embedder embedding.Embedder, cat *catalog.Catalog, cfg EngineConfig) *Engine {
	threshold := cfg.ReviewThreshold
	if threshold <= 0 {
		threshold = DefaultReviewThreshold
	}

	return &Engine{
		logger:    logger.WithComponent("classify"),
		embedder:  embedder,
		catalog:   cat,
		threshold: threshold,
		cache:     cfg.Cache,
		cacheTTL:  cfg.CacheTTL,
	}
}

// ReviewThreshold returns the configured review threshold.
func (e *Engine) ReviewThreshold() float64 {
	return e.threshold
}

// Classify maps a raw goods description to a tariff code, risk label and
// confidence. Empty or whitespace-only input is not an error: it yields a
// zero-confidence decision flagged for review without touching the embedding
// provider. An embedding failure is fatal for the request and propagates to
// the caller unretried.
func (e *Engine) Classify(ctx context.Context, raw string) (Decision, error) {
	normalized := normalizer.Normalize(raw)

	if normalized == "" {
		return Decision{
			RawInput:    raw,
			HumanReview: true,
		}, nil
	}

	if d, ok := e.cachedDecision(ctx, normalized); ok {
		d.RawInput = raw
		return d, nil
	}

	queryVec, err := e.embedder.EmbedSingle(ctx, normalized)
	if err != nil {
		return Decision{}, fmt.Errorf("embed query: %w", err)
	}

	entry, score := bestMatch(queryVec, e.catalog.Entries())

	decision := Decision{
		RawInput:    raw,
		Normalized:  normalized,
		MatchedDesc: entry.Description,
		Confidence:  roundConfidence(clamp01(score)),
		HSCode:      entry.HSCode,
		RiskFlag:    entry.RiskLabel,
		HumanReview: score < e.threshold,
	}

	e.storeDecision(ctx, normalized, decision)

	e.logger.Debug().
		Str("normalized", normalized).
		Str("hs_code", decision.HSCode).
		Float64("confidence", decision.Confidence).
		Bool("human_review", decision.HumanReview).
		Msg("classified goods description")

	return decision, nil
}

func (e *Engine) cachedDecision(ctx context.Context, normalized string) (Decision, bool) {
	if e.cache == nil {
		return Decision{}, false
	}

	data, err := e.cache.Get(ctx, decisionKey(normalized))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn().Err(err).Msg("decision cache lookup failed")
		}
		return Decision{}, false
	}

	var d Decision
	if err := json.Unmarshal(data, &d); err != nil {
		return Decision{}, false
	}
	return d, true
}

func (e *Engine) storeDecision(ctx context.Context, normalized string, d Decision) {
	if e.cache == nil {
		return
	}

	// RawInput varies across inputs sharing a normalized form; the caller's
	// raw text is re-attached on cache hits.
	d.RawInput = ""

	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, decisionKey(normalized), data, e.cacheTTL); err != nil {
		e.logger.Warn().Err(err).Msg("decision cache store failed")
	}
}

func decisionKey(normalized string) string {
	return "decision:" + normalized
}

// roundConfidence fixes presentation to 3 decimal digits. The threshold
// comparison always runs on the unrounded score.
func roundConfidence(score float64) float64 {
	return math.Round(score*1000) / 1000
}

func clamp01(score float64) float64 {
	return math.Max(0, math.Min(1, score))
}
