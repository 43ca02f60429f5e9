package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
	".git":         true,
	".m2":          true,
	"logs":         true,
	"build":        true,
	"dist":         true,
	".idea":        true,
	".vscode":      true,
	"bin":          true,
	"out":          true,
	".mulegate":    true,
}

// Files the analyzer never scans even though their extension matches. The
// tool's own config file stays out of the scoring denominator.
var skipFiles = map[string]bool{
	"settings.xml":          true,
	"application-types.xml": true,
	".mulegate.yaml":        true,
	".DS_Store":             true,
	"Thumbs.db":             true,
}

var scanExtensions = map[string]bool{
	".xml":        true,
	".yaml":       true,
	".yml":        true,
	".properties": true,
	".raml":       true,
	".wsdl":       true,
	".xsd":        true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
// The walk is lexical, so the returned order is stable across runs.
type FileScanner struct {
	extraSkip map[string]bool
}

func New(excludePaths ...string) *FileScanner {
	extra := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extra[strings.TrimSuffix(p, "/")] = true
	}
	return &FileScanner{extraSkip: extra}
}

// Scan returns the analyzable files under root as slash-separated paths
// relative to root.
func (s *FileScanner) Scan(root string) ([]string, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || s.extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.scannable(d.Name()) {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})

	return files, err
}

func (s *FileScanner) scannable(name string) bool {
	if skipFiles[name] {
		return false
	}
	if strings.HasSuffix(name, ".log") {
		return false
	}
	if name == "mule-artifact.json" {
		return true
	}
	return scanExtensions[strings.ToLower(filepath.Ext(name))]
}
