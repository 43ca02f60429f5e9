// Package proclog scrapes the analyzer's execution log for its self-reported
// run summary. The log is a separate channel from the XML report, which is
// what makes the consistency audit meaningful.
package proclog

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mulegate/mulegate/internal/domain"
)

// The analyzer emits one summary line per run plus an optional plain-text
// footer. Both spellings are accepted; the last occurrence wins.
var (
	completedRe = regexp.MustCompile(`Found (\d+) violations?\b`)
	totalRe     = regexp.MustCompile(`Total Violations:\s*(\d+)`)
	fileListRe  = regexp.MustCompile(`file list with (\d+) files to analyze`)
	scannedRe   = regexp.MustCompile(`Files Scanned:\s*(\d+)`)
	failedRe    = regexp.MustCompile(`Code review failed`)
)

// LogParser implements domain.ProcessLogParser.
type LogParser struct{}

func New() *LogParser {
	return &LogParser{}
}

// Parse extracts the self-reported violation and file counts. It returns an
// error when the log carries no summary at all, so callers can tell "the
// analyzer said zero" apart from "the analyzer said nothing".
func (p *LogParser) Parse(path string) (domain.SelfReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SelfReport{}, fmt.Errorf("read process log: %w", err)
	}

	var (
		report         domain.SelfReport
		haveViolations bool
	)
	for _, line := range strings.Split(string(data), "\n") {
		if failedRe.MatchString(line) {
			report.Failed = true
			continue
		}
		if n, ok := firstGroup(completedRe, line); ok {
			report.Violations = n
			haveViolations = true
			continue
		}
		if n, ok := firstGroup(totalRe, line); ok {
			report.Violations = n
			haveViolations = true
			continue
		}
		if n, ok := firstGroup(fileListRe, line); ok {
			report.FilesScanned = n
			continue
		}
		if n, ok := firstGroup(scannedRe, line); ok {
			report.FilesScanned = n
		}
	}

	if !haveViolations && !report.Failed {
		return domain.SelfReport{}, fmt.Errorf("no run summary in %s", path)
	}
	return report, nil
}

func firstGroup(re *regexp.Regexp, line string) (int, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
