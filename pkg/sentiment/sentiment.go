// Package sentiment reduces a text embedding's auxiliary features to a single
// score in [-1, 1] and averages scores across a dog's reviews.
package sentiment

import (
	"fmt"
	"log/slog"

	"github.com/mchmarny/pawpair/pkg/lexicon"
	"github.com/mchmarny/pawpair/pkg/text"
	"github.com/mchmarny/pawpair/pkg/vector"
	"gonum.org/v1/gonum/stat"
)

const (
	polarityWeight = 0.4
	compoundWeight = 0.6

	exclamationStep = 0.1
	exclamationCeil = 0.3
	capsWeight      = 0.2
)

// Score combines the pattern polarity and valence compound scores, adds the
// capped exclamation bonus and the uppercase bonus, and clamps to [-1, 1].
// Only the auxiliary features are read.
func Score(e text.Embedding) float64 {
	return ScoreFeatures(e.Features)
}

// ScoreFeatures scores an auxiliary feature block.
func ScoreFeatures(f text.Features) float64 {
	combined := f.Polarity*polarityWeight + f.Compound*compoundWeight
	punctuation := min(f.Exclamations*exclamationStep, exclamationCeil)
	caps := f.CapsRatio * capsWeight
	return vector.Clamp(combined+punctuation+caps, -1, 1)
}

// ScoreVector scores a concatenated embedding by reading its trailing
// auxiliary features.
func ScoreVector(v []float64) (float64, error) {
	f, err := text.FeaturesFrom(v)
	if err != nil {
		return 0, fmt.Errorf("reading features: %w", err)
	}
	return ScoreFeatures(f), nil
}

// Analyzer fits a vocabulary over a batch of reviews and scores reviews
// against that snapshot.
type Analyzer struct {
	vectorizer *text.Vectorizer
}

// NewAnalyzer returns an Analyzer using the given vocabulary bounds and
// lexicon provider.
func NewAnalyzer(opts text.Options, p lexicon.Provider) *Analyzer {
	return &Analyzer{vectorizer: text.NewVectorizer(opts, p)}
}

// Fit builds the vocabulary used by subsequent calls.
func (a *Analyzer) Fit(reviews []string) *text.Model {
	return a.vectorizer.Fit(reviews)
}

// Analyze embeds and scores a single review.
func (a *Analyzer) Analyze(review string) (float64, error) {
	e, err := a.vectorizer.Embed(review)
	if err != nil {
		return 0, fmt.Errorf("embedding review: %w", err)
	}
	return Score(e), nil
}

// AnalyzeAll scores each review in order.
func (a *Analyzer) AnalyzeAll(reviews []string) ([]float64, error) {
	scores := make([]float64, 0, len(reviews))
	for i, r := range reviews {
		s, err := a.Analyze(r)
		if err != nil {
			return nil, fmt.Errorf("review %d: %w", i, err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// Average returns the arithmetic mean of the review scores, or 0 when there
// are no reviews.
func (a *Analyzer) Average(reviews []string) (float64, error) {
	scores, err := a.AnalyzeAll(reviews)
	if err != nil {
		return 0, err
	}
	avg := Mean(scores)
	slog.Debug("average sentiment", "reviews", len(reviews), "score", avg)
	return avg, nil
}

// Mean returns the arithmetic mean of v, or 0 for an empty slice.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}
