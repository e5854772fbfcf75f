package trait

import (
	"testing"

	"github.com/mchmarny/pawpair/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDogA = Record{Age: 3, Weight: 45, Sex: 1, Neutered: 1, Sociability: 8, Temperament: 7}
	testDogB = Record{Age: 2, Weight: 40, Sex: 0, Neutered: 1, Sociability: 9, Temperament: 8}
)

func TestNormalize(t *testing.T) {
	c := DefaultConfig()
	tests := []struct {
		name  string
		trait Name
		value float64
		want  float64
	}{
		{"age min", Age, 0, 0},
		{"age max", Age, 20, 1},
		{"weight", Weight, 45, 44.0 / 199.0},
		{"sex", Sex, 1, 1},
		{"sociability", Sociability, 8, 7.0 / 9.0},
		{"temperament low", Temperament, 1, 0},
		{"age out of range", Age, 40, 2},
		{"weight below range", Weight, 0, -1.0 / 199.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Normalize(tt.trait, tt.value)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestNormalize_UnknownTrait(t *testing.T) {
	_, err := DefaultConfig().Normalize("breed", 1)
	assert.ErrorIs(t, err, ErrUnknownTrait)
}

func TestNormalize_DegenerateRange(t *testing.T) {
	c := Config{Ranges: map[Name]Range{Age: {Min: 5, Max: 5}}}
	_, err := c.Normalize(Age, 5)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestEmbed_UnitNorm(t *testing.T) {
	for _, r := range []Record{testDogA, testDogB, {Age: 19, Weight: 150, Sociability: 2, Temperament: 10}} {
		v := Embed(r)
		require.Len(t, v, Dimension)
		assert.InDelta(t, 1.0, vector.Norm(v), 1e-12)
	}
}

func TestEmbed_ZeroVector(t *testing.T) {
	// every trait sits at its range minimum
	r := Record{Age: 0, Weight: 1, Sex: 0, Neutered: 0, Sociability: 1, Temperament: 1}
	v := Embed(r)
	require.Len(t, v, Dimension)
	assert.True(t, vector.IsZero(v))
	assert.Equal(t, 0.0, vector.Norm(v))
}

func TestEmbed_CanonicalOrder(t *testing.T) {
	// only sociability is non-zero so the whole mass lands in slot 4
	r := Record{Age: 0, Weight: 1, Sociability: 10, Temperament: 1}
	v := Embed(r)
	assert.InDelta(t, 1.0, v[4], 1e-12)
	for i, x := range v {
		if i != 4 {
			assert.Equal(t, 0.0, x)
		}
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	assert.Equal(t, Embed(testDogA), Embed(testDogA))
}

func TestWithWeights(t *testing.T) {
	base := DefaultConfig()
	c, err := base.WithWeights(map[Name]float64{Age: 0})
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.Weights[Age])
	assert.Equal(t, 1.0, base.Weights[Age], "receiver must not change")

	// zero age weight removes the age slot from the embedding
	v := c.Embed(testDogA)
	assert.Equal(t, 0.0, v[0])
	assert.NotEqual(t, 0.0, Embed(testDogA)[0])
}

func TestWithWeights_Unknown(t *testing.T) {
	_, err := DefaultConfig().WithWeights(map[Name]float64{"size": 1})
	assert.ErrorIs(t, err, ErrUnknownTrait)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{}.Validate())

	bad := DefaultConfig()
	bad.Ranges[Weight] = Range{Min: 3, Max: 3}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRange)

	neg := DefaultConfig()
	neg.Weights[Sex] = -1
	assert.Error(t, neg.Validate())

	unknown := Config{Weights: map[Name]float64{"color": 1}}
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownTrait)
}

func TestEmbed_PartialConfigFallsBack(t *testing.T) {
	c := Config{Weights: map[Name]float64{Age: 1.0}}
	assert.Equal(t, Embed(testDogA), c.Embed(testDogA))
}

func TestRecordValue(t *testing.T) {
	for _, n := range Names {
		_, ok := testDogA.Value(n)
		assert.True(t, ok, n)
	}
	_, ok := testDogA.Value("breed")
	assert.False(t, ok)
}
