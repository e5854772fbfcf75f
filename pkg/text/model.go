// Package text builds a bounded TF-IDF vocabulary from a review corpus and
// embeds single reviews into TF-IDF plus auxiliary sentiment features.
//
// Fit returns an immutable *Model; every embedding reads that snapshot, so a
// batch of embeddings always sees one consistent (vocabulary, IDF) pair.
package text

import (
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	DefaultMaxVocabulary    = 5000
	DefaultMinTermFrequency = 2
	DefaultMinTokenLength   = 2
)

// ErrNotFitted is returned when embedding without a fitted vocabulary.
var ErrNotFitted = errors.New("vocabulary not initialized")

// Options bound the vocabulary built by Fit.
type Options struct {
	MaxVocabulary    int `json:"max_vocabulary" yaml:"maxVocabulary"`
	MinTermFrequency int `json:"min_term_frequency" yaml:"minTermFrequency"`
	MinTokenLength   int `json:"min_token_length" yaml:"minTokenLength"`
}

// DefaultOptions returns the standard vocabulary bounds.
func DefaultOptions() Options {
	return Options{
		MaxVocabulary:    DefaultMaxVocabulary,
		MinTermFrequency: DefaultMinTermFrequency,
		MinTokenLength:   DefaultMinTokenLength,
	}
}

// Model is a fitted vocabulary and its IDF table. It is never mutated after
// Fit returns and may be shared freely between readers.
type Model struct {
	index map[string]int
	terms []string
	idf   []float64
	docs  int
}

// Tokenize lowercases text, strips every character that is neither an ASCII
// letter nor whitespace, and splits on whitespace.
func Tokenize(text string) []string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case isSpace(r):
			return ' '
		default:
			return -1
		}
	}, strings.ToLower(text))
	return strings.Fields(clean)
}

// isSpace also counts the ASCII file, group, record and unit separators
// (U+001C..U+001F) as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r >= '\x1c' && r <= '\x1f'
}

// Fit builds a vocabulary over corpus: tokens occurring at least
// MinTermFrequency times with at least MinTokenLength letters, ranked by
// descending corpus frequency (ties keep first-occurrence order) and
// truncated to MaxVocabulary. Each term's IDF is ln(documents / document
// frequency).
func Fit(corpus []string, opts Options) *Model {
	opts = opts.withDefaults()

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	order := make([]string, 0)

	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if _, ok := termFreq[tok]; !ok {
				order = append(order, tok)
			}
			termFreq[tok]++
			if !seen[tok] {
				docFreq[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(order))
	for _, tok := range order {
		if termFreq[tok] >= opts.MinTermFrequency && len(tok) >= opts.MinTokenLength {
			terms = append(terms, tok)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return termFreq[terms[i]] > termFreq[terms[j]]
	})
	if len(terms) > opts.MaxVocabulary {
		terms = terms[:opts.MaxVocabulary]
	}

	m := &Model{
		index: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
		docs:  len(corpus),
	}
	for i, tok := range terms {
		m.index[tok] = i
		m.idf[i] = math.Log(float64(m.docs) / float64(docFreq[tok]))
	}

	slog.Debug("vocabulary fitted", "docs", m.docs, "tokens", len(termFreq), "terms", len(terms))
	return m
}

func (o Options) withDefaults() Options {
	if o.MaxVocabulary <= 0 {
		o.MaxVocabulary = DefaultMaxVocabulary
	}
	if o.MinTermFrequency <= 0 {
		o.MinTermFrequency = DefaultMinTermFrequency
	}
	if o.MinTokenLength <= 0 {
		o.MinTokenLength = DefaultMinTokenLength
	}
	return o
}

// Size returns the number of vocabulary terms.
func (m *Model) Size() int {
	if m == nil {
		return 0
	}
	return len(m.terms)
}

// Docs returns the number of documents the model was fitted on.
func (m *Model) Docs() int {
	if m == nil {
		return 0
	}
	return m.docs
}

// Terms returns the vocabulary in index order.
func (m *Model) Terms() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Index returns the vector slot of term.
func (m *Model) Index(term string) (int, bool) {
	if m == nil {
		return 0, false
	}
	i, ok := m.index[term]
	return i, ok
}

// IDF returns the inverse document frequency of term.
func (m *Model) IDF(term string) (float64, bool) {
	i, ok := m.Index(term)
	if !ok {
		return 0, false
	}
	return m.idf[i], true
}
