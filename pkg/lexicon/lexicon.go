// Package lexicon scores raw text against two word lexicons: an embedded
// pattern lexicon yielding polarity and subjectivity, and the VADER valence
// lexicon yielding compound, positive, negative and neutral scores.
package lexicon

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonreiter/govader"
)

const (
	kindWord     = "w"
	kindBooster  = "b"
	kindNegation = "n"
)

var (
	//go:embed words.txt
	defaultWords string

	ErrInvalidLexicon = errors.New("invalid lexicon")
)

// Scores is the fixed-shape output of a Provider.
type Scores struct {
	Polarity     float64 `json:"polarity" yaml:"polarity"`
	Subjectivity float64 `json:"subjectivity" yaml:"subjectivity"`
	Compound     float64 `json:"compound" yaml:"compound"`
	Positive     float64 `json:"positive" yaml:"positive"`
	Negative     float64 `json:"negative" yaml:"negative"`
	Neutral      float64 `json:"neutral" yaml:"neutral"`
}

// Provider scores raw text. Implementations must be deterministic.
type Provider interface {
	Scores(text string) Scores
}

type entry struct {
	polarity     float64
	subjectivity float64
}

// Analyzer is the built-in Provider. It is read-only after construction and
// safe for concurrent use.
type Analyzer struct {
	words     map[string]entry
	boosters  map[string]float64
	negations map[string]bool
	vader     *govader.SentimentIntensityAnalyzer
}

// New returns an Analyzer over the embedded word list.
func New() (*Analyzer, error) {
	return Load(strings.NewReader(defaultWords))
}

// Load parses a pattern lexicon and pairs it with the VADER valence
// lexicon. Each non-comment line is whitespace separated:
//
//	w <word> <polarity> <subjectivity>
//	b <word> <scalar>
//	n <word>
func Load(r io.Reader) (*Analyzer, error) {
	a := &Analyzer{
		words:     make(map[string]entry),
		boosters:  make(map[string]float64),
		negations: make(map[string]bool),
		vader:     govader.NewSentimentIntensityAnalyzer(),
	}

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := a.parseLine(text); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	if len(a.words) == 0 {
		return nil, fmt.Errorf("%w: no sentiment words", ErrInvalidLexicon)
	}
	return a, nil
}

func (a *Analyzer) parseLine(text string) error {
	f := strings.Fields(text)
	if len(f) < 2 {
		return fmt.Errorf("%w: %q", ErrInvalidLexicon, text)
	}
	word := strings.ToLower(f[1])

	switch f[0] {
	case kindWord:
		vals, err := parseFloats(f[2:], 2)
		if err != nil {
			return err
		}
		a.words[word] = entry{polarity: vals[0], subjectivity: vals[1]}
	case kindBooster:
		vals, err := parseFloats(f[2:], 1)
		if err != nil {
			return err
		}
		a.boosters[word] = vals[0]
	case kindNegation:
		a.negations[word] = true
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidLexicon, f[0])
	}
	return nil
}

func parseFloats(f []string, n int) ([]float64, error) {
	if len(f) != n {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidLexicon, n, len(f))
	}
	out := make([]float64, n)
	for i, s := range f {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLexicon, err)
		}
		out[i] = v
	}
	return out, nil
}

// Size returns the number of pattern lexicon words.
func (a *Analyzer) Size() int {
	return len(a.words)
}

// Scores runs both lexicons over text. Text without a single word scores
// zero on every field.
func (a *Analyzer) Scores(text string) Scores {
	toks := tokens(text)
	if len(toks) == 0 {
		return Scores{}
	}
	pol, subj := a.pattern(toks)
	v := a.valence(text)
	return Scores{
		Polarity:     pol,
		Subjectivity: subj,
		Compound:     v.compound,
		Positive:     v.positive,
		Negative:     v.negative,
		Neutral:      v.neutral,
	}
}

// token is a word with surrounding punctuation removed. key is the
// lowercase, apostrophe-free lookup form.
type token struct {
	raw string
	key string
}

func tokens(text string) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		raw := strings.TrimFunc(f, func(r rune) bool {
			return !isWordRune(r)
		})
		if raw == "" {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(raw), "'", "")
		out = append(out, token{raw: raw, key: key})
	}
	return out
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// negatedWithin reports whether any of the n tokens before i is a negation.
func (a *Analyzer) negatedWithin(toks []token, i, n int) bool {
	for j := max(0, i-n); j < i; j++ {
		if a.negations[toks[j].key] {
			return true
		}
	}
	return false
}
