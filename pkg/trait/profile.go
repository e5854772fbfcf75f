package trait

import (
	"math"
	"strings"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

// Profile is the owner-facing description of a dog where sociability and
// temperament are rated on a 1-5 scale.
type Profile struct {
	Age            float64 `json:"age" yaml:"age"`
	Weight         float64 `json:"weight" yaml:"weight"`
	Sex            string  `json:"sex" yaml:"sex"`
	Neutered       bool    `json:"neutered" yaml:"neutered"`
	DogSociability float64 `json:"dog_sociability" yaml:"dogSociability"`
	Temperament    float64 `json:"temperament" yaml:"temperament"`
}

// FromProfile converts a profile into a Record, doubling the 1-5 ratings
// onto the 1-10 scale.
func FromProfile(p Profile) Record {
	r := Record{
		Age:         p.Age,
		Weight:      p.Weight,
		Sociability: math.Round(p.DogSociability * 2),
		Temperament: math.Round(p.Temperament * 2),
	}
	if strings.EqualFold(strings.TrimSpace(p.Sex), SexMale) {
		r.Sex = 1
	}
	if p.Neutered {
		r.Neutered = 1
	}
	return r
}

// FromMap builds a Record from trait name keys. Missing age, weight, sex and
// neutered default to 0; missing sociability and temperament default to 1.
func FromMap(m map[string]float64) Record {
	get := func(n Name, def float64) float64 {
		if v, ok := m[string(n)]; ok {
			return v
		}
		return def
	}
	return Record{
		Age:         get(Age, 0),
		Weight:      get(Weight, 0),
		Sex:         get(Sex, 0),
		Neutered:    get(Neutered, 0),
		Sociability: get(Sociability, 1),
		Temperament: get(Temperament, 1),
	}
}
