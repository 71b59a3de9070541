// Package ingredient contains ingredient name normalization, fuzzy
// matching and cross-recipe consolidation into a single shopping list.
package ingredient

import "strings"

// defaultStopwords are descriptive adjectives stripped before matching.
// Callers extend the list through NormalizerConfig.
var defaultStopwords = []string{
	"fresh", "freshly", "organic", "chopped", "diced", "minced", "sliced",
	"grated", "shredded", "crushed", "ground", "melted", "softened",
	"large", "medium", "small", "extra", "finely", "coarsely", "roughly",
	"thinly", "ripe", "raw", "cooked", "boneless", "skinless", "unsalted",
	"salted", "whole", "halved", "peeled", "trimmed", "divided", "packed",
}

// defaultSingularExceptions are words whose trailing "s" is not a plural
var defaultSingularExceptions = []string{
	"molasses", "couscous", "asparagus", "hummus", "swiss", "brussels",
	"citrus", "watercress",
}

// NormalizerConfig extends the built-in stoplist and singular exceptions
type NormalizerConfig struct {
	ExtraStopwords          []string
	ExtraSingularExceptions []string
}

// Normalizer reduces an ingredient's free text to a comparable canonical
// name. Deterministic and side-effect free.
type Normalizer struct {
	stopwords          map[string]struct{}
	singularExceptions map[string]struct{}
}

// NewNormalizer creates a normalizer with the default lists plus any
// configured extensions
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	n := &Normalizer{
		stopwords:          make(map[string]struct{}),
		singularExceptions: make(map[string]struct{}),
	}
	for _, w := range defaultStopwords {
		n.stopwords[w] = struct{}{}
	}
	for _, w := range cfg.ExtraStopwords {
		n.stopwords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	for _, w := range defaultSingularExceptions {
		n.singularExceptions[w] = struct{}{}
	}
	for _, w := range cfg.ExtraSingularExceptions {
		n.singularExceptions[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return n
}

// Normalize lowercases, trims, strips stoplisted descriptors and
// singularizes each remaining word
func (n *Normalizer) Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripPunctuation(s)

	var kept []string
	for _, word := range strings.Fields(s) {
		if _, stop := n.stopwords[word]; stop {
			continue
		}
		kept = append(kept, n.singularize(word))
	}
	if len(kept) == 0 {
		// Everything was a descriptor; fall back to the trimmed input so
		// the line stays visible.
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(kept, " ")
}

// singularize strips a trailing "s" unless the word is on the exception
// list or the heuristic would clearly mangle it
func (n *Normalizer) singularize(word string) string {
	if len(word) <= 3 || !strings.HasSuffix(word, "s") {
		return word
	}
	if _, exempt := n.singularExceptions[word]; exempt {
		return word
	}
	if strings.HasSuffix(word, "ss") || strings.HasSuffix(word, "us") {
		return word
	}
	if strings.HasSuffix(word, "oes") || strings.HasSuffix(word, "ches") || strings.HasSuffix(word, "shes") {
		return strings.TrimSuffix(word, "es")
	}
	return strings.TrimSuffix(word, "s")
}

func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
