package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".kyber.yaml"

// DefaultTimeout bounds a single request's evaluation.
const DefaultTimeout = 5 * time.Second

// Config represents the overall configuration.
type Config struct {
	Name string `yaml:"name"`
	// Scripts lists extra directories scanned for refactoring scripts.
	// Relative entries are resolved against the configuration file's directory.
	Scripts []string `yaml:"scripts"`
	// Disabled lists refactoring ids to leave out of the catalog.
	Disabled []string `yaml:"disabled"`
	// Timeout is the per-request evaluation deadline; zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Name:     "kyber",
		Scripts:  []string{},
		Disabled: []string{},
		Timeout:  DefaultTimeout,
	}
}

// IsDisabled reports whether the refactoring with the given id is disabled.
func (c Config) IsDisabled(id string) bool {
	for _, d := range c.Disabled {
		if d == id {
			return true
		}
	}
	return false
}

// Load parses the configuration file at path. Fields absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	config := Default()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, dir := range config.Scripts {
		if !filepath.IsAbs(dir) {
			config.Scripts[i] = filepath.Join(base, dir)
		}
	}
	return config, nil
}

// LoadOrDefault is like Load but returns the defaults when the file does
// not exist.
func LoadOrDefault(path string) (Config, error) {
	config, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// Write stores config at path in YAML form.
func Write(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
