// Package catalog holds the fixed reference set of goods descriptions the
// classification engine matches against. Entries are embedded once at
// construction and immutable afterwards, so a Catalog is safe to share
// across concurrent requests without locking.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
)

// ErrEmptyCatalog indicates the catalog was constructed with no entries.
// The matcher requires at least one candidate, so this is fatal at startup.
var ErrEmptyCatalog = errors.New("catalog has no entries")

// Entry is one reference description with its tariff code and risk label.
type Entry struct {
	Description string    `yaml:"description"`
	HSCode      string    `yaml:"hs_code"`
	RiskLabel   string    `yaml:"risk"`
	Embedding   []float32 `yaml:"-"`
}

// Catalog is an ordered, read-only set of pre-embedded entries.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from the given entries, computing one embedding per
// description in a single batch call. Fails fast on an empty entry list or
// when the embedding provider is unavailable.
func New(ctx context.Context, embedder embedding.Embedder, entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Description
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed catalog descriptions: %w", err)
	}
	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d entries", len(vectors), len(entries))
	}

	owned := make([]Entry, len(entries))
	for i, e := range entries {
		e.Embedding = vectors[i]
		owned[i] = e
	}

	return &Catalog{entries: owned}, nil
}

// Entries returns the ordered entries. Callers must treat the slice as
// read-only.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Size returns the number of entries.
func (c *Catalog) Size() int {
	return len(c.entries)
}
