package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// MockClient is a deterministic offline embedder: each whitespace token is
// hashed into one dimension of a bag-of-words vector, which is then unit
// normalized. Texts sharing tokens get proportionally similar vectors, so
// cosine-based matching behaves sensibly without a real model.
type MockClient struct {
	dimension int
}

// NewMockClient creates a mock client with the given vector dimension.
func NewMockClient(dimension int) *MockClient {
	if dimension <= 0 {
		dimension = 768
	}
	return &MockClient{dimension: dimension}
}

// Embed generates deterministic token-hash embeddings.
func (c *MockClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, c.dimension)
		for _, token := range strings.Fields(text) {
			h := fnv.New32a()
			h.Write([]byte(token))
			v[int(h.Sum32())%c.dimension]++
		}
		embeddings[i] = unitNorm(v)
	}
	return embeddings, nil
}

// EmbedSingle generates a deterministic embedding for a single text.
func (c *MockClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Model returns the mock model name.
func (c *MockClient) Model() string {
	return "mock-token-hash"
}

// Dimension returns the embedding dimension.
func (c *MockClient) Dimension() int {
	return c.dimension
}

func unitNorm(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	n := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / n)
	}
	return v
}
