// Package compat blends structural similarity, review sentiment and rating
// history into one overall compatibility score.
package compat

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultK is the default smoothing parameter.
	DefaultK = 1.0

	// DefaultThreshold is the minimum overall score for a compatible pair.
	// It is independent of the structural similarity threshold.
	DefaultThreshold = 0.4

	// Smoothing priors. The first dog's factor is (s + 0.5k)/(s + k), the
	// second dog's is (s + 3k)/(s + 5k); the asymmetry is intentional.
	firstNumeratorK    = 0.5
	firstDenominatorK  = 1.0
	secondNumeratorK   = 3.0
	secondDenominatorK = 5.0

	ratingNumeratorK   = 2.5
	ratingDenominatorK = 5.0
)

var (
	// ErrInvalidSmoothing is returned when k is not a positive finite number.
	ErrInvalidSmoothing = errors.New("smoothing parameter must be positive")

	// ErrUndefinedScore is returned when a smoothing denominator is zero.
	ErrUndefinedScore = errors.New("undefined score: zero denominator")
)

// PairScore returns
//
//	similarity * ((sentA + 0.5k)/(sentA + k)) * ((sentB + 3k)/(sentB + 5k))
//
// Ratings are accepted for signature parity with the pipeline but do not
// contribute to the overall score.
func PairScore(similarity, sentimentA, sentimentB, ratingsSumA, ratingsSumB, k float64) (float64, error) {
	if err := validateK(k); err != nil {
		return 0, err
	}

	fa, err := smooth(sentimentA, firstNumeratorK*k, firstDenominatorK*k)
	if err != nil {
		return 0, fmt.Errorf("first sentiment factor: %w", err)
	}
	fb, err := smooth(sentimentB, secondNumeratorK*k, secondDenominatorK*k)
	if err != nil {
		return 0, fmt.Errorf("second sentiment factor: %w", err)
	}
	return similarity * fa * fb, nil
}

// RatingComponent returns (ratingsSum + 2.5k)/(ratingsSum + 5k).
func RatingComponent(ratingsSum, k float64) (float64, error) {
	if err := validateK(k); err != nil {
		return 0, err
	}
	v, err := smooth(ratingsSum, ratingNumeratorK*k, ratingDenominatorK*k)
	if err != nil {
		return 0, fmt.Errorf("rating component: %w", err)
	}
	return v, nil
}

// smooth returns (v + num)/(v + den).
func smooth(v, num, den float64) (float64, error) {
	d := v + den
	if d == 0 {
		return 0, fmt.Errorf("%w: value %v", ErrUndefinedScore, v)
	}
	return (v + num) / d, nil
}

func validateK(k float64) error {
	if !(k > 0) || math.IsInf(k, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSmoothing, k)
	}
	return nil
}
