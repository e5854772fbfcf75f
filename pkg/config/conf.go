package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/mchmarny/pawpair/pkg/compat"
	"github.com/mchmarny/pawpair/pkg/lexicon"
	"github.com/mchmarny/pawpair/pkg/similarity"
	"github.com/mchmarny/pawpair/pkg/text"
	"github.com/mchmarny/pawpair/pkg/trait"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	envFileName    = ".env"
	dirMode        = 0700
	fileMode       = 0600
)

// Config represents app config object.
type Config struct {
	Traits     trait.Config     `yaml:"traits"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Compat     CompatConfig     `yaml:"compat"`
	Text       TextConfig       `yaml:"text"`
}

type SimilarityConfig struct {
	Threshold float64 `yaml:"threshold" env:"PAWPAIR_SIMILARITY_THRESHOLD"`
}

type CompatConfig struct {
	Threshold float64 `yaml:"threshold" env:"PAWPAIR_COMPAT_THRESHOLD"`
	K         float64 `yaml:"k" env:"PAWPAIR_K"`
}

type TextConfig struct {
	MaxVocabulary    int `yaml:"max_vocabulary" env:"PAWPAIR_MAX_VOCABULARY"`
	MinTermFrequency int `yaml:"min_term_frequency" env:"PAWPAIR_MIN_TERM_FREQUENCY"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Traits:     trait.DefaultConfig(),
		Similarity: SimilarityConfig{Threshold: similarity.DefaultThreshold},
		Compat: CompatConfig{
			Threshold: compat.DefaultThreshold,
			K:         compat.DefaultK,
		},
		Text: TextConfig{
			MaxVocabulary:    text.DefaultMaxVocabulary,
			MinTermFrequency: text.DefaultMinTermFrequency,
		},
	}
}

// Validate checks the values the pipeline cannot recover from.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config required")
	}
	if err := c.Traits.Validate(); err != nil {
		return fmt.Errorf("traits: %w", err)
	}
	if !(c.Similarity.Threshold >= -1 && c.Similarity.Threshold <= 1) {
		return fmt.Errorf("similarity threshold out of range: %v", c.Similarity.Threshold)
	}
	if !(c.Compat.K > 0) || math.IsInf(c.Compat.K, 1) {
		return fmt.Errorf("%w: %v", compat.ErrInvalidSmoothing, c.Compat.K)
	}
	if math.IsNaN(c.Compat.Threshold) || math.IsInf(c.Compat.Threshold, 0) {
		return fmt.Errorf("compat threshold must be finite: %v", c.Compat.Threshold)
	}
	if c.Text.MaxVocabulary < 0 || c.Text.MinTermFrequency < 0 {
		return fmt.Errorf("text bounds must not be negative: max=%d min=%d",
			c.Text.MaxVocabulary, c.Text.MinTermFrequency)
	}
	return nil
}

// TextOptions returns the vocabulary bounds for the text vectorizer.
func (c *Config) TextOptions() text.Options {
	o := text.DefaultOptions()
	if c.Text.MaxVocabulary > 0 {
		o.MaxVocabulary = c.Text.MaxVocabulary
	}
	if c.Text.MinTermFrequency > 0 {
		o.MinTermFrequency = c.Text.MinTermFrequency
	}
	return o
}

// Pipeline returns a compatibility pipeline configured from c.
func (c *Config) Pipeline(p lexicon.Provider) *compat.Pipeline {
	pl := compat.NewPipeline(p)
	pl.Traits = c.Traits
	pl.Text = c.TextOptions()
	pl.Threshold = c.Compat.Threshold
	pl.K = c.Compat.K
	return pl
}

// Calculator returns a similarity calculator configured from c.
func (c *Config) Calculator() *similarity.Calculator {
	calc := similarity.NewCalculator(c.Similarity.Threshold)
	calc.Traits = c.Traits
	return calc
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configFileName, err)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one.
// Environment variables override values read from the file.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("failed to create dir %s: %w", dirPath, err)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(dirPath, Default()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}

	vars, err := environment(dirPath)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(c, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("error parsing environment overrides: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// environment returns the variables of an optional .env file in dirPath
// overlaid with the process environment, which wins on conflicts.
func environment(dirPath string) (map[string]string, error) {
	vars := make(map[string]string)

	path := filepath.Join(dirPath, envFileName)
	if _, err := os.Stat(path); err == nil {
		fileVars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("error reading env file %s: %w", path, err)
		}
		slog.Debug("env file loaded", "path", path, "vars", len(fileVars))
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}

// GetOrCreateHomeDir returns the home directory for the current user.
// The create flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
