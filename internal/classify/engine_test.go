package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/cache"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
)

// stubEmbedder returns fixed vectors per text, so tests can craft exact
// similarity scores.
type stubEmbedder struct {
	vectors     map[string][]float32
	singleCalls int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := s.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", text)
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	s.singleCalls++
	out, err := s.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *stubEmbedder) Model() string  { return "stub" }
func (s *stubEmbedder) Dimension() int { return 2 }

// anchorEngine builds an engine over a single "anchor" entry at [1, 0], so a
// query vector [x, y] scores x/|v| against it.
func anchorEngine(t *testing.T, queryVectors map[string][]float32, cfg EngineConfig) (*Engine, *stubEmbedder) {
	t.Helper()

	vectors := map[string][]float32{"anchor": {1, 0}}
	for k, v := range queryVectors {
		vectors[k] = v
	}
	embedder := &stubEmbedder{vectors: vectors}

	cat, err := catalog.New(context.Background(), embedder, []catalog.Entry{
		{Description: "anchor", HSCode: "851821", RiskLabel: "low"},
	})
	require.NoError(t, err)

	return NewEngine(observability.NopLogger(), embedder, cat, cfg), embedder
}

func TestClassify_EmptyInput(t *testing.T) {
	engine, embedder := anchorEngine(t, nil, EngineConfig{})

	for _, input := range []string{"", "   ", "\t\n"} {
		decision, err := engine.Classify(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, input, decision.RawInput)
		assert.Empty(t, decision.Normalized)
		assert.Empty(t, decision.MatchedDesc)
		assert.Empty(t, decision.HSCode)
		assert.Empty(t, decision.RiskFlag)
		assert.Zero(t, decision.Confidence)
		assert.True(t, decision.HumanReview)
		assert.False(t, decision.Matched())
	}

	assert.Zero(t, embedder.singleCalls, "empty input must not reach the embedding provider")
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	// [3, 4] scores exactly 3/5 = 0.6 against the anchor; a score equal to
	// the threshold is accepted. [3, 4.01] lands just below and is flagged.
	engine, _ := anchorEngine(t, map[string][]float32{
		"at threshold":    {3, 4},
		"below threshold": {3, 4.01},
	}, EngineConfig{ReviewThreshold: 0.6})

	atDecision, err := engine.Classify(context.Background(), "at threshold")
	require.NoError(t, err)
	assert.False(t, atDecision.HumanReview, "score equal to threshold must not be flagged")
	assert.InDelta(t, 0.6, atDecision.Confidence, 1e-9)

	belowDecision, err := engine.Classify(context.Background(), "below threshold")
	require.NoError(t, err)
	assert.True(t, belowDecision.HumanReview, "score just below threshold must be flagged")
}

func TestClassify_ConfidenceRoundedToThreeDecimals(t *testing.T) {
	// [1, 1] scores 1/sqrt(2) = 0.70710678... against the anchor, above the
	// default threshold. [1, 2] scores 1/sqrt(5) = 0.44721359..., below it.
	engine, _ := anchorEngine(t, map[string][]float32{
		"diagonal": {1, 1},
		"steep":    {1, 2},
	}, EngineConfig{})

	decision, err := engine.Classify(context.Background(), "diagonal")
	require.NoError(t, err)
	assert.Equal(t, 0.707, decision.Confidence)
	assert.False(t, decision.HumanReview)

	decision, err = engine.Classify(context.Background(), "steep")
	require.NoError(t, err)
	assert.Equal(t, 0.447, decision.Confidence)
	assert.True(t, decision.HumanReview)
}

func TestClassify_NegativeScoreClampedToZero(t *testing.T) {
	engine, _ := anchorEngine(t, map[string][]float32{
		"opposite": {-1, 0},
	}, EngineConfig{})

	decision, err := engine.Classify(context.Background(), "opposite")
	require.NoError(t, err)

	assert.Zero(t, decision.Confidence)
	assert.True(t, decision.HumanReview)
	assert.True(t, decision.Matched(), "a best-effort match is still returned")
}

func TestClassify_PopulatesDecisionFromMatch(t *testing.T) {
	engine, _ := anchorEngine(t, map[string][]float32{
		"anchor query": {1, 0},
	}, EngineConfig{})

	decision, err := engine.Classify(context.Background(), "Anchor QUERY!")
	require.NoError(t, err)

	assert.Equal(t, "Anchor QUERY!", decision.RawInput)
	assert.Equal(t, "anchor query", decision.Normalized)
	assert.Equal(t, "anchor", decision.MatchedDesc)
	assert.Equal(t, "851821", decision.HSCode)
	assert.Equal(t, "low", decision.RiskFlag)
	assert.Equal(t, 1.0, decision.Confidence)
	assert.False(t, decision.HumanReview)
}

func TestClassify_Deterministic(t *testing.T) {
	engine, _ := anchorEngine(t, map[string][]float32{
		"diagonal": {1, 1},
	}, EngineConfig{})

	first, err := engine.Classify(context.Background(), "diagonal")
	require.NoError(t, err)
	second, err := engine.Classify(context.Background(), "diagonal")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_EmbedderFailurePropagates(t *testing.T) {
	// "unknown" has no stub vector, so the provider fails.
	engine, _ := anchorEngine(t, nil, EngineConfig{})

	_, err := engine.Classify(context.Background(), "unknown")
	assert.ErrorContains(t, err, "embed query")
}

func TestClassify_DecisionCache(t *testing.T) {
	engine, embedder := anchorEngine(t, map[string][]float32{
		"anchor query": {1, 0},
	}, EngineConfig{
		Cache: cache.NewMemoryClient(100),
	})

	first, err := engine.Classify(context.Background(), "anchor query")
	require.NoError(t, err)

	// Same normalized form, different raw text: served from cache with the
	// caller's raw input re-attached.
	second, err := engine.Classify(context.Background(), "  Anchor Query  ")
	require.NoError(t, err)

	assert.Equal(t, 1, embedder.singleCalls, "second call must hit the cache")
	assert.Equal(t, "  Anchor Query  ", second.RawInput)

	second.RawInput = first.RawInput
	assert.Equal(t, first, second)
}

func TestClassify_EndToEndMixedScript(t *testing.T) {
	mock := embedding.NewMockClient(768)

	cat, err := catalog.New(context.Background(), mock, []catalog.Entry{
		{Description: "blutuz khospaker bluetooth speaker", HSCode: "851821", RiskLabel: "low"},
		{Description: "smartphone mobile phone", HSCode: "851712", RiskLabel: "encryption"},
	})
	require.NoError(t, err)

	engine := NewEngine(observability.NopLogger(), mock, cat, EngineConfig{})

	decision, err := engine.Classify(context.Background(), "բլուտուզ խոսփաքեր")
	require.NoError(t, err)

	assert.Equal(t, "blutuz khospaker", decision.Normalized)
	assert.Equal(t, "851821", decision.HSCode)
	assert.GreaterOrEqual(t, decision.Confidence, DefaultReviewThreshold)
	assert.False(t, decision.HumanReview)
}

func TestNewEngine_DefaultThreshold(t *testing.T) {
	engine, _ := anchorEngine(t, nil, EngineConfig{})
	assert.Equal(t, DefaultReviewThreshold, engine.ReviewThreshold())
}
