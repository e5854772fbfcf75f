package lexicon

type valenceScores struct {
	compound float64
	positive float64
	negative float64
	neutral  float64
}

// valence scores text with the VADER lexicon. Compound is already
// normalized into [-1, 1]; the other three are proportions summing to 1.
func (a *Analyzer) valence(text string) valenceScores {
	s := a.vader.PolarityScores(text)
	return valenceScores{
		compound: s.Compound,
		positive: s.Positive,
		negative: s.Negative,
		neutral:  s.Neutral,
	}
}
