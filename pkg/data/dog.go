package data

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mchmarny/pawpair/pkg/trait"
)

const (
	minRating = 1
	maxRating = 5
)

var (
	sexes = []string{trait.SexMale, trait.SexFemale}

	insertDog = `INSERT INTO dog (id, name, breed, age, weight, sex, neutered, sociability, temperament, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			breed = excluded.breed,
			age = excluded.age,
			weight = excluded.weight,
			sex = excluded.sex,
			neutered = excluded.neutered,
			sociability = excluded.sociability,
			temperament = excluded.temperament,
			updated_at = excluded.updated_at
	`

	selectDogColumns = `SELECT id, name, breed, age, weight, sex, neutered, sociability, temperament FROM dog`
	selectDog        = selectDogColumns + ` WHERE id = ?`
	selectDogs       = selectDogColumns + ` ORDER BY name, id`

	insertReview = `INSERT INTO review (id, dog_id, rating, description, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET rating = excluded.rating, description = excluded.description
	`

	selectReviews = `SELECT id, dog_id, rating, description FROM review WHERE dog_id = ? ORDER BY created_at, rowid`
)

// Dog is a catalog entry. Profile holds the owner-facing traits.
type Dog struct {
	ID      string        `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Breed   string        `json:"breed,omitempty" yaml:"breed,omitempty"`
	Profile trait.Profile `json:"profile" yaml:"profile"`
	Reviews []*Review     `json:"reviews,omitempty" yaml:"reviews,omitempty"`
}

// Traits returns the structural trait record of the dog.
func (d *Dog) Traits() trait.Record {
	return trait.FromProfile(d.Profile)
}

// Validate checks the dog before it is written.
func (d *Dog) Validate() error {
	if d == nil {
		return errors.New("dog required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("dog %s: name required", d.ID)
	}
	if !Contains(sexes, strings.ToLower(strings.TrimSpace(d.Profile.Sex))) {
		return fmt.Errorf("dog %s: sex must be one of %v, got %q", d.Name, sexes, d.Profile.Sex)
	}
	for _, r := range d.Reviews {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("dog %s: %w", d.Name, err)
		}
	}
	return nil
}

// Review is a free-text review of a dog with a 1-5 rating.
type Review struct {
	ID          string `json:"id" yaml:"id,omitempty"`
	DogID       string `json:"dog_id" yaml:"dogID,omitempty"`
	Rating      int    `json:"rating" yaml:"rating"`
	Description string `json:"description" yaml:"description"`
}

func (r *Review) Validate() error {
	if r == nil {
		return errors.New("review required")
	}
	if r.Rating < minRating || r.Rating > maxRating {
		return fmt.Errorf("review rating must be between %d and %d, got %d", minRating, maxRating, r.Rating)
	}
	return nil
}

// SaveDogs upserts dogs and their reviews in a single transaction. Dogs and
// reviews without an ID are assigned one.
func SaveDogs(db *sql.DB, dogs []*Dog) error {
	if db == nil {
		return errDBNotInitialized
	}

	for _, d := range dogs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("invalid dog: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range dogs {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		neutered := 0
		if d.Profile.Neutered {
			neutered = 1
		}
		if _, err := tx.Exec(insertDog, d.ID, d.Name, d.Breed, d.Profile.Age, d.Profile.Weight,
			strings.ToLower(strings.TrimSpace(d.Profile.Sex)), neutered,
			d.Profile.DogSociability, d.Profile.Temperament, now); err != nil {
			return rollback(tx, fmt.Errorf("failed to insert dog %s: %w", d.ID, err))
		}
		if err := saveReviews(tx, d.ID, d.Reviews, now); err != nil {
			return rollback(tx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("dogs saved", "count", len(dogs))
	return nil
}

// SaveReviews adds reviews to an existing dog.
func SaveReviews(db *sql.DB, dogID string, reviews []*Review) error {
	if db == nil {
		return errDBNotInitialized
	}
	if dogID == "" {
		return errors.New("dog id required")
	}
	for _, r := range reviews {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid review: %w", err)
		}
	}

	if _, err := GetDog(db, dogID); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := saveReviews(tx, dogID, reviews, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return rollback(tx, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func saveReviews(tx *sql.Tx, dogID string, reviews []*Review, now string) error {
	for _, r := range reviews {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.DogID = dogID
		if _, err := tx.Exec(insertReview, r.ID, dogID, r.Rating, r.Description, now); err != nil {
			return fmt.Errorf("failed to insert review %s: %w", r.ID, err)
		}
	}
	return nil
}

func rollback(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("failed to rollback transaction: %w (after %w)", rbErr, err)
	}
	return err
}

// GetDog returns the dog with its reviews.
func GetDog(db *sql.DB, id string) (*Dog, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	d, err := scanDog(db.QueryRow(selectDog, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dog %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan dog %s: %w", id, err)
	}

	d.Reviews, err = listReviews(db, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDogs returns every dog ordered by name, without reviews.
func ListDogs(db *sql.DB) ([]*Dog, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectDogs)
	if err != nil {
		return nil, fmt.Errorf("failed to query dogs: %w", err)
	}
	defer rows.Close()

	list := make([]*Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dog: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dogs: %w", err)
	}
	return list, nil
}

// GetReviews returns the review texts of a dog and the sum of their ratings.
func GetReviews(db *sql.DB, dogID string) ([]string, float64, error) {
	if db == nil {
		return nil, 0, errDBNotInitialized
	}

	list, err := listReviews(db, dogID)
	if err != nil {
		return nil, 0, err
	}

	texts := make([]string, 0, len(list))
	var sum float64
	for _, r := range list {
		texts = append(texts, r.Description)
		sum += float64(r.Rating)
	}
	return texts, sum, nil
}

func listReviews(db *sql.DB, dogID string) ([]*Review, error) {
	rows, err := db.Query(selectReviews, dogID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews of %s: %w", dogID, err)
	}
	defer rows.Close()

	list := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.DogID, &r.Rating, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDog(row scanner) (*Dog, error) {
	d := &Dog{}
	var neutered int
	if err := row.Scan(&d.ID, &d.Name, &d.Breed, &d.Profile.Age, &d.Profile.Weight, &d.Profile.Sex,
		&neutered, &d.Profile.DogSociability, &d.Profile.Temperament); err != nil {
		return nil, err
	}
	d.Profile.Neutered = neutered == 1
	return d, nil
}
