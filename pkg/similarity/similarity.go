// Package similarity compares trait vectors with cosine similarity and
// applies the structural compatibility threshold.
package similarity

import (
	"log/slog"
	"sort"

	"github.com/mchmarny/pawpair/pkg/trait"
	"github.com/mchmarny/pawpair/pkg/vector"
)

// DefaultThreshold is the minimum cosine similarity for two dogs to be
// structurally compatible.
const DefaultThreshold = 0.85

// Result is the structural compatibility of one pair of dogs.
type Result struct {
	FirstID    string  `json:"first_id" yaml:"firstID"`
	SecondID   string  `json:"second_id" yaml:"secondID"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Compatible bool    `json:"compatible" yaml:"compatible"`
	Threshold  float64 `json:"threshold" yaml:"threshold"`
}

// Candidate is one dog considered by FindCompatible.
type Candidate struct {
	ID     string       `json:"id" yaml:"id"`
	Traits trait.Record `json:"traits" yaml:"traits"`
}

// Cosine returns dot(u,v)/(|u||v|) clamped to [-1, 1], or exactly 0 when
// either vector has zero norm.
func Cosine(u, v []float64) float64 {
	nu, nv := vector.Norm(u), vector.Norm(v)
	if nu == 0 || nv == 0 {
		return 0
	}
	return vector.Clamp(vector.Dot(u, v)/(nu*nv), -1, 1)
}

// Calculator embeds trait records and decides compatibility against a
// fixed threshold.
type Calculator struct {
	Threshold float64
	Traits    trait.Config
}

// NewCalculator returns a Calculator with the default trait configuration.
func NewCalculator(threshold float64) *Calculator {
	return &Calculator{
		Threshold: threshold,
		Traits:    trait.DefaultConfig(),
	}
}

// Similarity returns the cosine similarity of the two embedded records.
func (c *Calculator) Similarity(a, b trait.Record) float64 {
	return Cosine(c.Traits.Embed(a), c.Traits.Embed(b))
}

// Compare embeds both records and returns their compatibility.
func (c *Calculator) Compare(idA string, a trait.Record, idB string, b trait.Record) *Result {
	return c.CompareVectors(idA, c.Traits.Embed(a), idB, c.Traits.Embed(b))
}

// CompareVectors returns the compatibility of two precomputed trait vectors.
func (c *Calculator) CompareVectors(idA string, u []float64, idB string, v []float64) *Result {
	sim := Cosine(u, v)
	r := &Result{
		FirstID:    idA,
		SecondID:   idB,
		Similarity: sim,
		Compatible: sim >= c.Threshold,
		Threshold:  c.Threshold,
	}
	slog.Debug("compared", "a", idA, "b", idB, "similarity", sim, "compatible", r.Compatible)
	return r
}

// FindCompatible compares target against every candidate and returns the
// compatible ones ordered by descending similarity. Candidates with equal
// similarity keep their input order.
func (c *Calculator) FindCompatible(targetID string, target trait.Record, candidates []Candidate) []*Result {
	tv := c.Traits.Embed(target)

	list := make([]*Result, 0)
	for _, cand := range candidates {
		r := c.CompareVectors(targetID, tv, cand.ID, c.Traits.Embed(cand.Traits))
		if r.Compatible {
			list = append(list, r)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Similarity > list[j].Similarity
	})

	slog.Debug("compatible candidates", "target", targetID, "candidates", len(candidates), "compatible", len(list))
	return list
}
