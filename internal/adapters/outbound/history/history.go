package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mulegate/mulegate/internal/domain"
)

const historyFile = ".mulegate/history/runs.json"

// FileHistory implements domain.HistoryStore using JSON file storage under
// the project's .mulegate directory.
type FileHistory struct {
	projectPath string
}

func New(projectPath string) *FileHistory {
	return &FileHistory{projectPath: projectPath}
}

func (h *FileHistory) Append(entry domain.HistoryEntry) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(h.projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load() ([]domain.HistoryEntry, error) {
	fp := filepath.Join(h.projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
