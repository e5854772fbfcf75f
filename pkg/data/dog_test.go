package data

import (
	"strings"
	"testing"

	"github.com/mchmarny/pawpair/pkg/trait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDog(id, name string, reviews ...*Review) *Dog {
	return &Dog{
		ID:    id,
		Name:  name,
		Breed: "Mixed",
		Profile: trait.Profile{
			Age:            3,
			Weight:         45,
			Sex:            trait.SexMale,
			Neutered:       true,
			DogSociability: 4,
			Temperament:    3.5,
		},
		Reviews: reviews,
	}
}

func TestSaveAndGetDog(t *testing.T) {
	db := setupTestDB(t)

	d := testDog("max", "Max",
		&Review{Rating: 5, Description: "great dog"},
		&Review{Rating: 4, Description: "very gentle"},
	)
	require.NoError(t, SaveDogs(db, []*Dog{d}))

	got, err := GetDog(db, "max")
	require.NoError(t, err)
	assert.Equal(t, "Max", got.Name)
	assert.Equal(t, "Mixed", got.Breed)
	assert.Equal(t, d.Profile, got.Profile)
	require.Len(t, got.Reviews, 2)
	assert.Equal(t, "great dog", got.Reviews[0].Description)
	assert.Equal(t, "max", got.Reviews[0].DogID)
	assert.NotEmpty(t, got.Reviews[0].ID)

	want := trait.Record{Age: 3, Weight: 45, Sex: 1, Neutered: 1, Sociability: 8, Temperament: 7}
	assert.Equal(t, want, got.Traits())
}

func TestSaveDogs_AssignsIDs(t *testing.T) {
	db := setupTestDB(t)

	d := testDog("", "Rocky", &Review{Rating: 3, Description: "ok"})
	require.NoError(t, SaveDogs(db, []*Dog{d}))
	assert.NotEmpty(t, d.ID)
	assert.NotEmpty(t, d.Reviews[0].ID)

	_, err := GetDog(db, d.ID)
	assert.NoError(t, err)
}

func TestSaveDogs_Upsert(t *testing.T) {
	db := setupTestDB(t)

	d := testDog("max", "Max")
	require.NoError(t, SaveDogs(db, []*Dog{d}))

	d.Name = "Maximus"
	d.Profile.Age = 4
	require.NoError(t, SaveDogs(db, []*Dog{d}))

	list, err := ListDogs(db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Maximus", list[0].Name)
	assert.Equal(t, 4.0, list[0].Profile.Age)
}

func TestSaveDogs_Invalid(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name string
		dog  *Dog
	}{
		{"missing name", testDog("x", "")},
		{"bad sex", func() *Dog { d := testDog("x", "X"); d.Profile.Sex = "unknown"; return d }()},
		{"rating too high", testDog("x", "X", &Review{Rating: 6, Description: "wow"})},
		{"rating too low", testDog("x", "X", &Review{Rating: 0, Description: "meh"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, SaveDogs(db, []*Dog{tt.dog}))
		})
	}

	list, err := ListDogs(db)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveDogs_SexIsNormalized(t *testing.T) {
	db := setupTestDB(t)

	d := testDog("bella", "Bella")
	d.Profile.Sex = " Female "
	require.NoError(t, SaveDogs(db, []*Dog{d}))

	got, err := GetDog(db, "bella")
	require.NoError(t, err)
	assert.Equal(t, trait.SexFemale, got.Profile.Sex)
	assert.Equal(t, 0.0, got.Traits().Sex)
}

func TestGetDog_NotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := GetDog(db, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDogs_Ordered(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveDogs(db, []*Dog{testDog("z", "Zeus"), testDog("a", "Bella"), testDog("m", "Max")}))

	list, err := ListDogs(db)
	require.NoError(t, err)
	require.Len(t, list, 3)
	names := make([]string, 0, len(list))
	for _, d := range list {
		names = append(names, d.Name)
		assert.Empty(t, d.Reviews)
	}
	assert.Equal(t, []string{"Bella", "Max", "Zeus"}, names)
}

func TestGetReviews(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SaveDogs(db, []*Dog{testDog("max", "Max")}))

	texts, sum, err := GetReviews(db, "max")
	require.NoError(t, err)
	assert.Empty(t, texts)
	assert.Equal(t, 0.0, sum)

	require.NoError(t, SaveReviews(db, "max", []*Review{
		{Rating: 5, Description: "amazing"},
		{Rating: 2, Description: "barks a lot"},
	}))

	texts, sum, err = GetReviews(db, "max")
	require.NoError(t, err)
	assert.Equal(t, []string{"amazing", "barks a lot"}, texts)
	assert.Equal(t, 7.0, sum)
}

func TestSaveReviews_UnknownDog(t *testing.T) {
	db := setupTestDB(t)
	err := SaveReviews(db, "ghost", []*Review{{Rating: 5, Description: "?"}})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, SaveReviews(db, "", nil))
}

func TestNilDB(t *testing.T) {
	assert.ErrorIs(t, SaveDogs(nil, nil), errDBNotInitialized)
	assert.ErrorIs(t, SaveReviews(nil, "x", nil), errDBNotInitialized)

	_, err := GetDog(nil, "x")
	assert.ErrorIs(t, err, errDBNotInitialized)
	_, err = ListDogs(nil)
	assert.ErrorIs(t, err, errDBNotInitialized)
	_, _, err = GetReviews(nil, "x")
	assert.ErrorIs(t, err, errDBNotInitialized)
	_, err = ImportFile(nil, "x")
	assert.ErrorIs(t, err, errDBNotInitialized)
}

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog(strings.NewReader(`{"dogs": [{"id": "a", "name": "A", "profile": {"sex": "male"}}]}`))
	require.NoError(t, err)
	require.Len(t, c.Dogs, 1)
	assert.Equal(t, "a", c.Dogs[0].ID)

	c, err = ParseCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Dogs)

	_, err = ParseCatalog(strings.NewReader("dogs: [oops"))
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	db := setupTestDB(t)

	n, err := ImportFile(db, "testdata/dogs.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	max, err := GetDog(db, "max")
	require.NoError(t, err)
	assert.Len(t, max.Reviews, 2)

	subjects, err := ListSubjects(db, "max")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "bella", subjects[0].ID)
	assert.Equal(t, 5.0, subjects[0].RatingsSum)
	assert.Empty(t, subjects[1].Reviews)

	s, err := GetSubject(db, "max")
	require.NoError(t, err)
	assert.Equal(t, 9.0, s.RatingsSum)
	assert.Equal(t, max.Traits(), s.Traits)
	assert.Len(t, s.Reviews, 2)

	cands, err := ListCandidates(db, "max")
	require.NoError(t, err)
	assert.Len(t, cands, 2)

	_, err = ImportFile(db, "testdata/missing.yaml")
	assert.Error(t, err)
}
