package data

import (
	"database/sql"
	"fmt"

	"github.com/mchmarny/pawpair/pkg/compat"
	"github.com/mchmarny/pawpair/pkg/similarity"
)

// GetSubject loads a dog with its review texts and ratings sum.
func GetSubject(db *sql.DB, id string) (compat.Subject, error) {
	d, err := GetDog(db, id)
	if err != nil {
		return compat.Subject{}, err
	}
	return toSubject(d), nil
}

// ListSubjects loads every dog except the excluded ids.
func ListSubjects(db *sql.DB, exclude ...string) ([]compat.Subject, error) {
	dogs, err := ListDogs(db)
	if err != nil {
		return nil, err
	}

	list := make([]compat.Subject, 0, len(dogs))
	for _, d := range dogs {
		if Contains(exclude, d.ID) {
			continue
		}
		texts, sum, err := GetReviews(db, d.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reviews of %s: %w", d.ID, err)
		}
		list = append(list, compat.Subject{
			ID:         d.ID,
			Traits:     d.Traits(),
			Reviews:    texts,
			RatingsSum: sum,
		})
	}
	return list, nil
}

// ListCandidates returns the trait records of every dog except the
// excluded ids.
func ListCandidates(db *sql.DB, exclude ...string) ([]similarity.Candidate, error) {
	dogs, err := ListDogs(db)
	if err != nil {
		return nil, err
	}

	list := make([]similarity.Candidate, 0, len(dogs))
	for _, d := range dogs {
		if Contains(exclude, d.ID) {
			continue
		}
		list = append(list, similarity.Candidate{ID: d.ID, Traits: d.Traits()})
	}
	return list, nil
}

func toSubject(d *Dog) compat.Subject {
	s := compat.Subject{
		ID:      d.ID,
		Traits:  d.Traits(),
		Reviews: make([]string, 0, len(d.Reviews)),
	}
	for _, r := range d.Reviews {
		s.Reviews = append(s.Reviews, r.Description)
		s.RatingsSum += float64(r.Rating)
	}
	return s
}
