// Package detector classifies a project tree as a Mule 4 application, a
// legacy Mule 3 application, or a generic integration project.
package detector

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/mulegate/mulegate/internal/domain"
)

// KindDetector implements domain.ProjectDetector. Detection order:
//   - mule-artifact.json marks Mule 4
//   - mule-project.xml marks Mule 3
//   - pom packaging decides when both descriptors are absent
//   - src/main/mule vs src/main/app decides for descriptor-less trees
type KindDetector struct{}

func New() *KindDetector {
	return &KindDetector{}
}

type pomFile struct {
	XMLName   xml.Name `xml:"project"`
	Packaging string   `xml:"packaging"`
}

func (d *KindDetector) Detect(root string) string {
	if fileExists(filepath.Join(root, "mule-artifact.json")) {
		return domain.ProjectKindMule4
	}
	if fileExists(filepath.Join(root, "mule-project.xml")) {
		return domain.ProjectKindMule3
	}

	switch pomPackaging(filepath.Join(root, "pom.xml")) {
	case "mule-application":
		return domain.ProjectKindMule4
	case "mule":
		return domain.ProjectKindMule3
	}

	if dirExists(filepath.Join(root, "src", "main", "mule")) {
		return domain.ProjectKindMule4
	}
	if dirExists(filepath.Join(root, "src", "main", "app")) {
		return domain.ProjectKindMule3
	}
	return domain.ProjectKindGeneric
}

func pomPackaging(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pom pomFile
	if err := xml.Unmarshal(data, &pom); err != nil {
		return ""
	}
	return pom.Packaging
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
