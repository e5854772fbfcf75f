package lexicon

import (
	"github.com/mchmarny/pawpair/pkg/vector"
	"gonum.org/v1/gonum/stat"
)

const (
	patternNegationFactor = -0.5
	patternNegationWindow = 3
)

// pattern averages the polarity and subjectivity of the matched words.
// A booster directly before a word scales both by (1 + scalar); a negation
// within the preceding window flips and halves the polarity.
func (a *Analyzer) pattern(toks []token) (polarity, subjectivity float64) {
	var pols, subjs []float64
	for i, t := range toks {
		e, ok := a.words[t.key]
		if !ok {
			continue
		}

		p, s := e.polarity, e.subjectivity
		if i > 0 {
			if b, ok := a.boosters[toks[i-1].key]; ok {
				p *= 1 + b
				s *= 1 + b
			}
		}
		if a.negatedWithin(toks, i, patternNegationWindow) {
			p *= patternNegationFactor
		}

		pols = append(pols, vector.Clamp(p, -1, 1))
		subjs = append(subjs, vector.Clamp(s, 0, 1))
	}

	if len(pols) == 0 {
		return 0, 0
	}
	return vector.Clamp(stat.Mean(pols, nil), -1, 1), vector.Clamp(stat.Mean(subjs, nil), 0, 1)
}
