// Package normalizer canonicalizes noisy multi-script goods descriptions
// (Armenian, Russian, Latin, informal transliteration) into a comparable
// token stream for semantic matching.
package normalizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// armToLat maps lowercase Armenian sequences to their Latin transliteration.
// Multi-rune source sequences (digraphs) are matched greedily before single
// runes, longest match first. One source rune may expand to several Latin
// characters.
var armToLat = map[string]string{
	"ու": "u",

	"ա": "a", "բ": "b", "գ": "g", "դ": "d", "ե": "e", "զ": "z",
	"է": "e", "ը": "y", "թ": "t", "ժ": "zh", "ի": "i", "լ": "l",
	"խ": "kh", "ծ": "ts", "կ": "k", "հ": "h", "ձ": "dz", "ղ": "gh",
	"ճ": "ch", "մ": "m", "յ": "y", "ն": "n", "շ": "sh", "ո": "o",
	"չ": "ch", "պ": "p", "ջ": "j", "ռ": "r", "ս": "s", "վ": "v",
	"տ": "t", "ր": "r", "ց": "c", "փ": "p", "ք": "k",
	"և": "ev", "օ": "o", "ֆ": "f",
}

// maxSourceLen is the longest source sequence in armToLat, in runes.
const maxSourceLen = 2

// Normalize converts a raw goods description into canonical form: lowercase,
// Armenian transliterated to Latin, everything outside the allow-list
// (Latin letters, Cyrillic letters, digits, space) replaced with a space,
// and whitespace collapsed. Empty or whitespace-only input yields "".
//
// The transform is deterministic and idempotent: output is already in
// canonical form and passes through unchanged.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := norm.NFC.String(strings.ToLower(raw))

	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); {
		matched := false
		for l := maxSourceLen; l >= 1; l-- {
			if i+l > len(runes) {
				continue
			}
			if lat, ok := armToLat[string(runes[i:i+l])]; ok {
				b.WriteString(lat)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}

	mapped := b.String()

	var clean strings.Builder
	clean.Grow(len(mapped))
	for _, r := range mapped {
		if allowed(r) {
			clean.WriteRune(r)
		} else {
			clean.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(clean.String()), " ")
}

// allowed reports whether r survives the post-mapping cleanup. Cyrillic is
// retained alongside the Latin target alphabet so Russian vocabulary stays
// matchable; digits carry model numbers, years and quantities.
func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ':
		return true
	case r >= 'а' && r <= 'я', r == 'ё':
		return true
	}
	return false
}
