// Package dataset holds the canonical, static collection of perk records.
//
// The dataset is loaded once at startup, either from the embedded default
// data or from a directory of YAML files, and is read-only afterwards.
package dataset

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/query"
)

//go:embed data/*.yaml
var defaultFS embed.FS

// Store is the in-memory perk collection. Records keep their curated
// declaration order, which is the fallback display order.
type Store struct {
	mu    sync.RWMutex
	perks []models.Perk
	byID  map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// LoadDefault builds a store from the embedded dataset.
func LoadDefault() (*Store, error) {
	s := NewStore()
	if err := s.loadFS(defaultFS, "data"); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFromDir builds a store from every YAML file in dir, processed in
// file-name order so the curated order stays deterministic.
func LoadFromDir(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML files in dataset dir %s", dir)
	}

	s := NewStore()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset file: %w", err)
		}
		if err := s.loadBytes(data); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	slog.Info("dataset loaded", "files", len(files), "perks", s.Count())
	return s, nil
}

func (s *Store) loadFS(fsys fs.FS, dir string) error {
	matches, err := fs.Glob(fsys, dir+"/*.yaml")
	if err != nil {
		return err
	}
	sort.Strings(matches)

	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read embedded dataset: %w", err)
		}
		if err := s.loadBytes(data); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// datasetFile is the YAML structure of a perks data file.
type datasetFile struct {
	Perks []models.Perk `yaml:"perks"`
}

func (s *Store) loadBytes(data []byte) error {
	var df datasetFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, perk := range df.Perks {
		if err := validate(perk); err != nil {
			return err
		}
		if _, exists := s.byID[perk.ID]; exists {
			return fmt.Errorf("duplicate perk id %q", perk.ID)
		}
		if !perk.Category.Valid() {
			// Unknown categories render with the fallback label; flag them
			// so the data file gets fixed.
			slog.Warn("unknown perk category", "id", perk.ID, "category", perk.Category)
		}
		s.byID[perk.ID] = len(s.perks)
		s.perks = append(s.perks, perk)
	}
	return nil
}

func validate(p models.Perk) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("perk id is required")
	case p.Company == "":
		return fmt.Errorf("perk %q: company is required", p.ID)
	case p.Name == "":
		return fmt.Errorf("perk %q: name is required", p.ID)
	case p.Description == "":
		return fmt.Errorf("perk %q: description is required", p.ID)
	case p.Eligibility == "":
		return fmt.Errorf("perk %q: eligibility is required", p.ID)
	case p.ApplyURL == "":
		return fmt.Errorf("perk %q: apply_url is required", p.ID)
	}
	return nil
}

// All returns every perk in curated order.
func (s *Store) All() []models.Perk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Perk, len(s.perks))
	copy(result, s.perks)
	return result
}

// ByID returns the perk with the given id, or nil. A nil result is a normal
// outcome (retired perk, bad deep link), not an error.
func (s *Store) ByID(id string) *models.Perk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	perk := s.perks[i]
	return &perk
}

// ByCategory returns all perks in the category, preserving curated order.
func (s *Store) ByCategory(c models.Category) []models.Perk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Perk
	for _, perk := range s.perks {
		if perk.Category == c {
			result = append(result, perk)
		}
	}
	return result
}

// Featured returns the perks flagged for promoted display, in curated order.
func (s *Store) Featured() []models.Perk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Perk
	for _, perk := range s.perks {
		if perk.Featured {
			result = append(result, perk)
		}
	}
	return result
}

// CategorySummaries returns one summary per category in the closed
// enumeration, including zero-count categories.
func (s *Store) CategorySummaries() []models.CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Category]int)
	for _, perk := range s.perks {
		counts[perk.Category]++
	}

	result := make([]models.CategorySummary, 0, len(models.Categories))
	for _, c := range models.Categories {
		result = append(result, models.CategorySummary{
			Category: c,
			Label:    c.Label(),
			Count:    counts[c],
		})
	}
	return result
}

// Count returns the number of perks in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.perks)
}

// Stats summarizes the dataset. EstimatedValue sums the dollar amount parsed
// from each perk's credits text; perks without one contribute zero.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, perk := range s.perks {
		total += query.ExtractCreditValue(perk.Credits)
	}

	return models.Stats{
		TotalPerks:      len(s.perks),
		TotalCategories: len(models.Categories),
		EstimatedValue:  total,
	}
}
