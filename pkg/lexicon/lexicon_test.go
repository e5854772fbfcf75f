package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New()
	require.NoError(t, err)
	return a
}

func TestNew(t *testing.T) {
	a := newTestAnalyzer(t)
	assert.Greater(t, a.Size(), 50)
	assert.True(t, a.negations["not"])
	assert.InDelta(t, 0.293, a.boosters["very"], 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown kind", "x good 1 1 1"},
		{"missing values", "w good 1.9"},
		{"bad number", "w good a b c"},
		{"short line", "w"},
		{"no words", "# only a comment\nn not"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrInvalidLexicon)
		})
	}
}

func TestLoad_Custom(t *testing.T) {
	a, err := Load(strings.NewReader("# custom\nw Woof 0.5 0.5\n\nn nope\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Size())

	s := a.Scores("woof")
	assert.InDelta(t, 0.5, s.Polarity, 1e-9)
	assert.InDelta(t, 0.5, s.Subjectivity, 1e-9)
	assert.Equal(t, 0.0, s.Compound)

	n := a.Scores("nope woof")
	assert.Less(t, n.Polarity, 0.0)
}

func TestLoad_ValenceIndependentOfPatternWords(t *testing.T) {
	a, err := Load(strings.NewReader("w woof 0.5 0.5\n"))
	require.NoError(t, err)

	s := a.Scores("a lovely dog")
	assert.Equal(t, 0.0, s.Polarity)
	assert.Greater(t, s.Compound, 0.0)
	assert.Greater(t, s.Positive, 0.0)
	assert.InDelta(t, 1.0, s.Positive+s.Negative+s.Neutral, 1e-9)
}

func TestScores_Empty(t *testing.T) {
	s := newTestAnalyzer(t).Scores("")
	assert.Equal(t, Scores{}, s)

	p := newTestAnalyzer(t).Scores("!!! ...")
	assert.Equal(t, Scores{}, p)
}

func TestScores_NoSentimentWords(t *testing.T) {
	s := newTestAnalyzer(t).Scores("the dog sat on the mat")
	assert.Equal(t, 0.0, s.Polarity)
	assert.Equal(t, 0.0, s.Subjectivity)
	assert.Equal(t, 0.0, s.Compound)
	assert.Equal(t, 0.0, s.Positive)
	assert.Equal(t, 0.0, s.Negative)
	assert.InDelta(t, 1.0, s.Neutral, 1e-12)
}

func TestScores_Polarity(t *testing.T) {
	a := newTestAnalyzer(t)

	pos := a.Scores("This dog is absolutely amazing! So friendly and well-behaved.")
	assert.Greater(t, pos.Polarity, 0.0)
	assert.Greater(t, pos.Compound, 0.5)
	assert.Greater(t, pos.Positive, pos.Negative)

	neg := a.Scores("Terrible experience. The dog was aggressive and untrained.")
	assert.Less(t, neg.Polarity, 0.0)
	assert.Less(t, neg.Compound, -0.4)
	assert.Greater(t, neg.Negative, neg.Positive)
}

func TestScores_Bounds(t *testing.T) {
	a := newTestAnalyzer(t)
	texts := []string{
		"GREAT GREAT GREAT dog!!!!!!!! best best best",
		"worst worst worst, horrible, nasty, violent",
		"not good",
		"Okay dog, nothing special.",
	}
	for _, text := range texts {
		s := a.Scores(text)
		assert.GreaterOrEqual(t, s.Polarity, -1.0, text)
		assert.LessOrEqual(t, s.Polarity, 1.0, text)
		assert.GreaterOrEqual(t, s.Subjectivity, 0.0, text)
		assert.LessOrEqual(t, s.Subjectivity, 1.0, text)
		assert.GreaterOrEqual(t, s.Compound, -1.0, text)
		assert.LessOrEqual(t, s.Compound, 1.0, text)
		assert.InDelta(t, 1.0, s.Positive+s.Negative+s.Neutral, 1e-9, text)
	}
}

func TestScores_Negation(t *testing.T) {
	a := newTestAnalyzer(t)
	good := a.Scores("good dog")
	notGood := a.Scores("not a good dog")
	assert.Greater(t, good.Compound, 0.0)
	assert.Less(t, notGood.Compound, 0.0)
	assert.Less(t, notGood.Polarity, 0.0)

	// contractions drop the apostrophe before lookup
	isnt := a.Scores("he isn't friendly")
	assert.Less(t, isnt.Compound, 0.0)
}

func TestScores_Boosters(t *testing.T) {
	a := newTestAnalyzer(t)
	plain := a.Scores("a good dog")
	boosted := a.Scores("a very good dog")
	damped := a.Scores("a slightly good dog")

	assert.Greater(t, boosted.Compound, plain.Compound)
	assert.Less(t, damped.Compound, plain.Compound)
	assert.Greater(t, boosted.Polarity, plain.Polarity)
}

func TestScores_Emphasis(t *testing.T) {
	a := newTestAnalyzer(t)
	plain := a.Scores("a good dog")
	excl := a.Scores("a good dog!!")
	caps := a.Scores("a GOOD dog")

	assert.Greater(t, excl.Compound, plain.Compound)
	assert.Greater(t, caps.Compound, plain.Compound)
}

func TestScores_Deterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "Great companion, very loving and gentle."
	assert.Equal(t, a.Scores(text), a.Scores(text))
}
