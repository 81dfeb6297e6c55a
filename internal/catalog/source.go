package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a catalog source.
type catalogFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadEntries reads catalog entries from a YAML file. The file is an
// externally supplied, versioned data source loaded once at startup; the
// engine never writes it back.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	for i, e := range f.Entries {
		if e.Description == "" {
			return nil, fmt.Errorf("catalog entry %d: description is required", i)
		}
		if e.HSCode == "" {
			return nil, fmt.Errorf("catalog entry %d: hs_code is required", i)
		}
	}

	return f.Entries, nil
}

// DefaultEntries returns the built-in reference entries. Descriptions mix
// English, Russian and transliterated Armenian vocabulary so informal
// invoice phrasings land near the right entry.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Description: "wireless bluetooth speaker portable audio device blutuz khospaker колонка blutuz speaker",
			HSCode:      "851821",
			RiskLabel:   "low",
		},
		{
			Description: "smartphone mobile phone iphone samsung айфон телефон smart phone",
			HSCode:      "851712",
			RiskLabel:   "encryption",
		},
		{
			Description: "electric drill power tool for construction электро дрель дрель instrument",
			HSCode:      "846721",
			RiskLabel:   "dual-use",
		},
		{
			Description: "cotton t-shirt men clothing мужская футболка хлопок apparel textile",
			HSCode:      "610910",
			RiskLabel:   "low",
		},
	}
}
