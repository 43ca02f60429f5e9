package baseline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mulegate/mulegate/internal/domain"
)

// Store is a file-based implementation of domain.BaselineStore.
type Store struct {
	projectPath string
}

// New creates a baseline store rooted at the project directory.
func New(projectPath string) *Store {
	return &Store{projectPath: projectPath}
}

// Load reads the pinned baseline. Returns (nil, nil) if none exists.
func (s *Store) Load() (*domain.Baseline, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no baseline is not an error
		}
		return nil, err
	}

	var b domain.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Save writes the baseline to disk, creating directories as needed.
func (s *Store) Save(b domain.Baseline) error {
	if err := os.MkdirAll(s.dir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(), data, 0644)
}

// Invalidate removes the baseline file.
func (s *Store) Invalidate() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) dir() string {
	return filepath.Join(s.projectPath, ".mulegate", "cache")
}

func (s *Store) path() string {
	return filepath.Join(s.dir(), "baseline.json")
}
