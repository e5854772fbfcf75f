package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/pawpair/pkg/compat"
	"github.com/mchmarny/pawpair/pkg/lexicon"
	"github.com/mchmarny/pawpair/pkg/trait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, Default(), c1)

	c1.Compat.K = 2
	c1.Similarity.Threshold = 0.9
	c1.Text.MaxVocabulary = 100
	c1.Traits.Weights[trait.Age] = 3

	err = Save(dir, c1)
	assert.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c2)
	assert.Equal(t, c1.Compat.K, c2.Compat.K)
	assert.Equal(t, c1.Similarity.Threshold, c2.Similarity.Threshold)
	assert.Equal(t, c1.Text.MaxVocabulary, c2.Text.MaxVocabulary)
	assert.Equal(t, 3.0, c2.Traits.Weights[trait.Age])
}

func TestConfig_PartialFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("compat:\n  threshold: 0.5\ntraits:\n  weights:\n    sociability: 2\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), content, fileMode))

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Compat.Threshold)
	assert.Equal(t, compat.DefaultK, c.Compat.K)
	assert.Equal(t, 2.0, c.Traits.Weights[trait.Sociability])
	assert.Equal(t, trait.DefaultWeights()[trait.Age], c.Traits.Weights[trait.Age])
}

func TestConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAWPAIR_K", "2.5")
	t.Setenv("PAWPAIR_COMPAT_THRESHOLD", "0.3")
	t.Setenv("PAWPAIR_MAX_VOCABULARY", "42")

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 2.5, c.Compat.K)
	assert.Equal(t, 0.3, c.Compat.Threshold)
	assert.Equal(t, 42, c.TextOptions().MaxVocabulary)
}

func TestConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("PAWPAIR_K=3\nPAWPAIR_SIMILARITY_THRESHOLD=0.7\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, envFileName), content, fileMode))
	t.Setenv("PAWPAIR_SIMILARITY_THRESHOLD", "0.9")

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.Compat.K)
	assert.Equal(t, 0.9, c.Similarity.Threshold, "process env wins over .env")

	_, ok := os.LookupEnv("PAWPAIR_K")
	assert.False(t, ok, ".env values are not exported")
}

func TestConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAWPAIR_K", "0")

	_, err := ReadOrCreate(dir)
	assert.ErrorIs(t, err, compat.ErrInvalidSmoothing)
}

func TestConfig_Validate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.Compat.Threshold = math.NaN()
	assert.Error(t, c.Validate())

	c = Default()
	c.Similarity.Threshold = 1.5
	assert.Error(t, c.Validate())

	c = Default()
	c.Compat.K = math.Inf(1)
	assert.ErrorIs(t, c.Validate(), compat.ErrInvalidSmoothing)

	c = Default()
	c.Text.MaxVocabulary = -1
	assert.Error(t, c.Validate())

	var nilConfig *Config
	assert.Error(t, nilConfig.Validate())
}

func TestConfig_InvalidTrait(t *testing.T) {
	dir := t.TempDir()
	content := []byte("traits:\n  weights:\n    color: 1\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), content, fileMode))

	_, err := ReadOrCreate(dir)
	assert.ErrorIs(t, err, trait.ErrUnknownTrait)
}

func TestConfig_RequiresDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
	assert.Error(t, Save("", Default()))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestConfig_Pipeline(t *testing.T) {
	c := Default()
	c.Compat.K = 3
	c.Compat.Threshold = 0.2
	c.Text.MinTermFrequency = 1

	lex, err := lexicon.New()
	require.NoError(t, err)

	p := c.Pipeline(lex)
	assert.Equal(t, 3.0, p.K)
	assert.Equal(t, 0.2, p.Threshold)
	assert.Equal(t, 1, p.Text.MinTermFrequency)
	assert.Equal(t, lex, p.Lexicon)

	calc := c.Calculator()
	assert.Equal(t, c.Similarity.Threshold, calc.Threshold)
}

func TestGetOrCreateHomeDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, created, err := GetOrCreateHomeDir("pawpair")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, ".pawpair", filepath.Base(dir))

	_, created, err = GetOrCreateHomeDir(".pawpair")
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = GetOrCreateHomeDir("")
	assert.Error(t, err)
}
