package data

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the import file layout.
type Catalog struct {
	Dogs []*Dog `json:"dogs" yaml:"dogs"`
}

// ParseCatalog decodes a YAML (or JSON) catalog.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, errors.New("reader required")
	}

	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &c, nil
}

// ImportFile loads the catalog at path into the database and returns the
// number of dogs saved.
func ImportFile(db *sql.DB, path string) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if path == "" {
		return 0, errors.New("import file path required")
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open import file %s: %w", path, err)
	}
	defer file.Close()

	n, err := Import(db, file)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return n, nil
}

// Import loads the catalog read from r into the database and returns the
// number of dogs saved.
func Import(db *sql.DB, r io.Reader) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}

	c, err := ParseCatalog(r)
	if err != nil {
		return 0, err
	}

	if err := SaveDogs(db, c.Dogs); err != nil {
		return 0, err
	}
	return len(c.Dogs), nil
}
