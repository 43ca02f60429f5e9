// Package pmdreport parses the analyzer's structured XML report into
// violation records. The strict parser is the canonical path; the lenient
// parser recovers whatever records precede a corruption instead of refusing
// the whole document.
package pmdreport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mulegate/mulegate/internal/domain"
)

// reportNamespace is the namespace the analyzer stamps on its reports.
const reportNamespace = "http://pmd.sourceforge.net/report/2.0.0"

// Parser implements domain.ReportParser for the analyzer's XML format.
// Violation file paths are normalized to slash-separated paths relative to
// the project root so they compare against scanner output.
type Parser struct {
	root string
}

func New(root string) *Parser {
	return &Parser{root: root}
}

type xmlReport struct {
	XMLName xml.Name  `xml:"pmd"`
	Files   []xmlFile `xml:"file"`
}

type xmlFile struct {
	Name       string         `xml:"name,attr"`
	Violations []xmlViolation `xml:"violation"`
}

type xmlViolation struct {
	BeginLine int    `xml:"beginline,attr"`
	Line      int    `xml:"line,attr"`
	Rule      string `xml:"rule,attr"`
	Ruleset   string `xml:"ruleset,attr"`
	Priority  string `xml:"priority,attr"`
	MsgAttr   string `xml:"message,attr"`
	Text      string `xml:",chardata"`
}

// Parse reads the report strictly: well-formed XML, a pmd root element, and
// the expected namespace when one is declared.
func (p *Parser) Parse(path string) ([]domain.ViolationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report xmlReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	if report.XMLName.Space != "" && report.XMLName.Space != reportNamespace {
		return nil, fmt.Errorf("parse report %s: unexpected namespace %q", path, report.XMLName.Space)
	}

	var out []domain.ViolationRecord
	for _, f := range report.Files {
		for _, v := range f.Violations {
			out = append(out, p.record(f.Name, v))
		}
	}
	return out, nil
}

// ParseLenient walks the document token by token, keeping every violation
// decoded before the first corruption. Namespace and root element checks are
// dropped; a truncated report yields its intact prefix.
func (p *Parser) ParseLenient(path string) ([]domain.ViolationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		out         []domain.ViolationRecord
		currentFile string
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "file":
				currentFile = attrValue(el, "name")
			case "violation":
				var v xmlViolation
				if err := dec.DecodeElement(&v, &el); err != nil {
					return out, nil
				}
				out = append(out, p.record(currentFile, v))
			}
		case xml.EndElement:
			if el.Name.Local == "file" {
				currentFile = ""
			}
		}
	}
	return out, nil
}

func (p *Parser) record(file string, v xmlViolation) domain.ViolationRecord {
	line := v.BeginLine
	if line <= 0 {
		line = v.Line
	}
	if line <= 0 {
		line = 1
	}

	msg := strings.TrimSpace(v.Text)
	if msg == "" {
		msg = v.MsgAttr
	}

	// The analyzer's default priority is 3 when the attribute is absent.
	sev := domain.SeverityLow
	if strings.TrimSpace(v.Priority) != "" {
		sev = domain.ParseSeverity(v.Priority)
	}

	rule := v.Rule
	if rule == "" {
		rule = "Unknown"
	}

	return domain.ViolationRecord{
		Severity: sev,
		RuleID:   rule,
		FilePath: p.cleanPath(file),
		Line:     line,
		Message:  msg,
	}
}

// cleanPath strips the project root prefix the analyzer bakes into absolute
// report paths.
func (p *Parser) cleanPath(path string) string {
	path = filepath.ToSlash(path)
	if p.root != "" {
		root := strings.TrimSuffix(filepath.ToSlash(p.root), "/")
		if rest, ok := strings.CutPrefix(path, root+"/"); ok {
			return rest
		}
	}
	return strings.TrimPrefix(path, "./")
}

func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
