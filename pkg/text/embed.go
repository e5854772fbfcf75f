package text

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/mchmarny/pawpair/pkg/lexicon"
	"github.com/mchmarny/pawpair/pkg/vector"
)

// Offsets of the auxiliary features within the trailing feature block.
const (
	OffsetPolarity = iota
	OffsetSubjectivity
	OffsetCompound
	OffsetPositive
	OffsetNegative
	OffsetNeutral
	OffsetExclamations
	OffsetCapsRatio
	OffsetTokens

	// FeatureCount is the number of auxiliary features appended to every
	// TF-IDF vector.
	FeatureCount
)

var errNoProvider = errors.New("lexicon provider required")

// Features are the unnormalized auxiliary features of one text.
type Features struct {
	Polarity     float64 `json:"polarity" yaml:"polarity"`
	Subjectivity float64 `json:"subjectivity" yaml:"subjectivity"`
	Compound     float64 `json:"compound" yaml:"compound"`
	Positive     float64 `json:"positive" yaml:"positive"`
	Negative     float64 `json:"negative" yaml:"negative"`
	Neutral      float64 `json:"neutral" yaml:"neutral"`
	Exclamations float64 `json:"exclamations" yaml:"exclamations"`
	CapsRatio    float64 `json:"caps_ratio" yaml:"capsRatio"`
	Tokens       float64 `json:"tokens" yaml:"tokens"`
}

// Slice returns the features in offset order.
func (f Features) Slice() []float64 {
	return []float64{
		f.Polarity, f.Subjectivity,
		f.Compound, f.Positive, f.Negative, f.Neutral,
		f.Exclamations, f.CapsRatio, f.Tokens,
	}
}

// FeaturesFrom reads the trailing FeatureCount values of v.
func FeaturesFrom(v []float64) (Features, error) {
	if len(v) < FeatureCount {
		return Features{}, fmt.Errorf("embedding too short: %d < %d", len(v), FeatureCount)
	}
	t := v[len(v)-FeatureCount:]
	return Features{
		Polarity:     t[OffsetPolarity],
		Subjectivity: t[OffsetSubjectivity],
		Compound:     t[OffsetCompound],
		Positive:     t[OffsetPositive],
		Negative:     t[OffsetNegative],
		Neutral:      t[OffsetNeutral],
		Exclamations: t[OffsetExclamations],
		CapsRatio:    t[OffsetCapsRatio],
		Tokens:       t[OffsetTokens],
	}, nil
}

// Embedding is a unit-norm (or zero) TF-IDF vector followed by the
// auxiliary features.
type Embedding struct {
	TFIDF    []float64 `json:"tfidf" yaml:"tfidf"`
	Features Features  `json:"features" yaml:"features"`
}

// Dimension returns the vocabulary size plus FeatureCount.
func (e Embedding) Dimension() int {
	return len(e.TFIDF) + FeatureCount
}

// Vector returns the concatenated embedding.
func (e Embedding) Vector() []float64 {
	out := make([]float64, 0, e.Dimension())
	out = append(out, e.TFIDF...)
	return append(out, e.Features.Slice()...)
}

// Embed converts text into an Embedding over the fitted vocabulary. The
// TF-IDF part uses the preprocessed tokens; the auxiliary features are taken
// from the raw text.
func (m *Model) Embed(text string, p lexicon.Provider) (Embedding, error) {
	if m == nil {
		return Embedding{}, ErrNotFitted
	}
	if p == nil {
		return Embedding{}, errNoProvider
	}

	toks := Tokenize(text)
	counts := make(map[string]int, len(toks))
	for _, t := range toks {
		counts[t]++
	}

	tfidf := make([]float64, len(m.terms))
	for tok, n := range counts {
		i, ok := m.index[tok]
		if !ok {
			continue
		}
		tf := float64(n) / float64(len(toks))
		tfidf[i] = tf * m.idf[i]
	}

	s := p.Scores(text)
	return Embedding{
		TFIDF: vector.Unit(tfidf),
		Features: Features{
			Polarity:     s.Polarity,
			Subjectivity: s.Subjectivity,
			Compound:     s.Compound,
			Positive:     s.Positive,
			Negative:     s.Negative,
			Neutral:      s.Neutral,
			Exclamations: float64(strings.Count(text, "!")),
			CapsRatio:    capsRatio(text),
			Tokens:       float64(len(toks)),
		},
	}, nil
}

func capsRatio(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 0
	}
	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(total)
}

// Vectorizer keeps the most recently fitted Model. Refitting swaps the
// snapshot atomically; Fit itself must not be called concurrently.
type Vectorizer struct {
	opts     Options
	provider lexicon.Provider
	model    atomic.Pointer[Model]
}

// NewVectorizer returns an unfitted Vectorizer.
func NewVectorizer(opts Options, p lexicon.Provider) *Vectorizer {
	return &Vectorizer{opts: opts, provider: p}
}

// Fit replaces the current snapshot with one fitted on corpus and returns it.
func (v *Vectorizer) Fit(corpus []string) *Model {
	m := Fit(corpus, v.opts)
	v.model.Store(m)
	return m
}

// Model returns the current snapshot, or nil before the first Fit.
func (v *Vectorizer) Model() *Model {
	return v.model.Load()
}

// Embed embeds text with the current snapshot.
func (v *Vectorizer) Embed(text string) (Embedding, error) {
	return v.model.Load().Embed(text, v.provider)
}
