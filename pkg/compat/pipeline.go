package compat

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mchmarny/pawpair/pkg/lexicon"
	"github.com/mchmarny/pawpair/pkg/sentiment"
	"github.com/mchmarny/pawpair/pkg/similarity"
	"github.com/mchmarny/pawpair/pkg/text"
	"github.com/mchmarny/pawpair/pkg/trait"
)

var errNoLexicon = errors.New("lexicon provider required")

// Subject is everything the pipeline knows about one dog.
type Subject struct {
	ID         string       `json:"id" yaml:"id"`
	Traits     trait.Record `json:"traits" yaml:"traits"`
	Reviews    []string     `json:"reviews" yaml:"reviews"`
	RatingsSum float64      `json:"ratings_sum" yaml:"ratingsSum"`
}

// Result is the outcome of one aggregation pass over a pair of dogs.
// The rating components are reported but not folded into Overall.
type Result struct {
	FirstID          string  `json:"first_id,omitempty" yaml:"firstID,omitempty"`
	SecondID         string  `json:"second_id,omitempty" yaml:"secondID,omitempty"`
	Similarity       float64 `json:"similarity" yaml:"similarity"`
	SentimentA       float64 `json:"sentiment_a" yaml:"sentimentA"`
	SentimentB       float64 `json:"sentiment_b" yaml:"sentimentB"`
	RatingComponentA float64 `json:"rating_component_a" yaml:"ratingComponentA"`
	RatingComponentB float64 `json:"rating_component_b" yaml:"ratingComponentB"`
	Overall          float64 `json:"overall" yaml:"overall"`
	Compatible       bool    `json:"compatible" yaml:"compatible"`
	Threshold        float64 `json:"threshold" yaml:"threshold"`
	K                float64 `json:"k" yaml:"k"`
	Vocabulary       int     `json:"vocabulary" yaml:"vocabulary"`
}

// Pipeline runs the end-to-end compatibility computation.
type Pipeline struct {
	Traits    trait.Config
	Text      text.Options
	Lexicon   lexicon.Provider
	Threshold float64
	K         float64
}

// NewPipeline returns a Pipeline with the default configuration.
func NewPipeline(p lexicon.Provider) *Pipeline {
	return &Pipeline{
		Traits:    trait.DefaultConfig(),
		Text:      text.DefaultOptions(),
		Lexicon:   p,
		Threshold: DefaultThreshold,
		K:         DefaultK,
	}
}

// Run fits one vocabulary over both dogs' reviews, averages each dog's review
// sentiment, computes trait similarity and blends them into Overall.
func (p *Pipeline) Run(a, b Subject) (*Result, error) {
	if p.Lexicon == nil {
		return nil, errNoLexicon
	}
	if err := validateK(p.K); err != nil {
		return nil, err
	}

	corpus := make([]string, 0, len(a.Reviews)+len(b.Reviews))
	corpus = append(corpus, a.Reviews...)
	corpus = append(corpus, b.Reviews...)

	analyzer := sentiment.NewAnalyzer(p.Text, p.Lexicon)
	model := analyzer.Fit(corpus)

	sa, err := analyzer.Average(a.Reviews)
	if err != nil {
		return nil, fmt.Errorf("scoring reviews of %q: %w", a.ID, err)
	}
	sb, err := analyzer.Average(b.Reviews)
	if err != nil {
		return nil, fmt.Errorf("scoring reviews of %q: %w", b.ID, err)
	}

	sim := similarity.Cosine(p.Traits.Embed(a.Traits), p.Traits.Embed(b.Traits))

	overall, err := PairScore(sim, sa, sb, a.RatingsSum, b.RatingsSum, p.K)
	if err != nil {
		return nil, fmt.Errorf("scoring %q and %q: %w", a.ID, b.ID, err)
	}
	ra, err := RatingComponent(a.RatingsSum, p.K)
	if err != nil {
		return nil, fmt.Errorf("rating of %q: %w", a.ID, err)
	}
	rb, err := RatingComponent(b.RatingsSum, p.K)
	if err != nil {
		return nil, fmt.Errorf("rating of %q: %w", b.ID, err)
	}

	r := &Result{
		FirstID:          a.ID,
		SecondID:         b.ID,
		Similarity:       sim,
		SentimentA:       sa,
		SentimentB:       sb,
		RatingComponentA: ra,
		RatingComponentB: rb,
		Overall:          overall,
		Compatible:       overall >= p.Threshold,
		Threshold:        p.Threshold,
		K:                p.K,
		Vocabulary:       model.Size(),
	}

	slog.Debug("pair scored",
		"a", a.ID, "b", b.ID, "similarity", sim, "sentiment_a", sa, "sentiment_b", sb,
		"overall", overall, "compatible", r.Compatible)

	return r, nil
}

// Rank runs the pipeline for target against each candidate and returns the
// results ordered by descending overall score. Equal scores keep the input
// order.
func (p *Pipeline) Rank(target Subject, candidates []Subject) ([]*Result, error) {
	list := make([]*Result, 0, len(candidates))
	for _, c := range candidates {
		r, err := p.Run(target, c)
		if err != nil {
			return nil, fmt.Errorf("ranking %q: %w", c.ID, err)
		}
		list = append(list, r)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Overall > list[j].Overall
	})

	slog.Debug("ranked candidates", "target", target.ID, "candidates", len(list))
	return list, nil
}
