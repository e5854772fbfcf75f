package data

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	stateQueries = map[string]string{
		"dogs":    "SELECT COUNT(*) FROM dog",
		"reviews": "SELECT COUNT(*) FROM review",
		"breeds":  "SELECT COUNT(DISTINCT breed) FROM dog WHERE breed != ''",
		"ratings": "SELECT COALESCE(SUM(rating), 0) FROM review",
	}
)

// GetDataState returns row counts and the ratings total of the catalog.
func GetDataState(db *sql.DB) (map[string]int64, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	state := make(map[string]int64, len(stateQueries))
	for k, q := range stateQueries {
		count, err := getCount(db, q)
		if err != nil {
			return nil, fmt.Errorf("error getting %s count: %w", k, err)
		}
		state[k] = count
	}

	return state, nil
}

func getCount(db *sql.DB, query string) (int64, error) {
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan row: %w", err)
	}
	return count, nil
}
