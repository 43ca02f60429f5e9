// Package artifact persists the latest compliance report as the JSON
// artifact the gate command judges.
package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mulegate/mulegate/internal/domain"
)

// Store is a file-based implementation of domain.ArtifactStore.
type Store struct {
	projectPath string
}

func New(projectPath string) *Store {
	return &Store{projectPath: projectPath}
}

// PathIn returns where the artifact lives for a project. The gate probes
// here when no explicit artifact is given.
func PathIn(projectPath string) string {
	return filepath.Join(projectPath, ".mulegate", "report.json")
}

// Save writes the report artifact, creating directories as needed.
func (s *Store) Save(report *domain.ComplianceReport) error {
	path := PathIn(s.projectPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
