// Package store provides the optional on-disk counterparty name overrides.
//
// The bank reports counterparty display names in whatever form the other
// bank registered them ("ACME s.r.o., Prague 4"). A small YAML map lets the
// user pick the name that should land in the ledger instead. The file is
// optional; without it every name passes through unchanged.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// NameStore maps raw bank counterparty names to preferred ledger names.
type NameStore struct {
	File string

	names map[string]string
}

// NewNameStore creates a store backed by the given YAML file. The file is
// not read until Load is called.
func NewNameStore(file string) *NameStore {
	return &NameStore{File: file}
}

// FindConfigFile looks for the overrides file in standard locations.
func (s *NameStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "fio-firefly", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the overrides file. A missing file is not an error; the store
// simply stays empty.
func (s *NameStore) Load() error {
	s.names = map[string]string{}

	path, err := s.FindConfigFile(s.File)
	if err != nil {
		log.Debugf("No counterparty overrides file found: %s", s.File)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading counterparty overrides %s: %w", path, err)
	}

	var names map[string]string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("parsing counterparty overrides %s: %w", path, err)
	}

	for name, override := range names {
		s.names[normalizeName(name)] = override
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(s.names),
	}).Debug("Loaded counterparty name overrides")
	return nil
}

// Lookup returns the preferred name for a raw bank counterparty name, or the
// input unchanged when no override exists. Safe on a nil store.
func (s *NameStore) Lookup(name string) string {
	if s == nil || s.names == nil {
		return name
	}
	if override, ok := s.names[normalizeName(name)]; ok {
		return override
	}
	return name
}

// normalizeName makes the override match case and whitespace insensitive.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
