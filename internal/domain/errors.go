package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Degenerate inputs that abort scoring before any number is produced.
var (
	ErrNoFilesScanned             = errors.New("no files scanned")
	ErrInvalidWeightConfiguration = errors.New("invalid weight configuration: file and severity weights are both zero")
)

// MalformedScanResultError reports a bookkeeping defect between the scanned
// file set and the parsed violations. It aborts the run; the defect is never
// silently patched.
type MalformedScanResultError struct {
	FilePath string
	Detail   string
}

func (e *MalformedScanResultError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("malformed scan result: %s (file %q)", e.Detail, e.FilePath)
	}
	return fmt.Sprintf("malformed scan result: %s", e.Detail)
}

// IsMalformedScanResult reports whether err carries a MalformedScanResultError.
func IsMalformedScanResult(err error) bool {
	var target *MalformedScanResultError
	return errors.As(err, &target)
}

// ExtractionFailedError reports that every extraction strategy was exhausted
// without recovering the fields the caller asked for. A missing score stays
// missing; it is never defaulted.
type ExtractionFailedError struct {
	Attempted []string
	Missing   []string
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("extraction failed: missing %s after strategies [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Attempted, ", "))
}

// IsExtractionFailed reports whether err carries an ExtractionFailedError.
func IsExtractionFailed(err error) bool {
	var target *ExtractionFailedError
	return errors.As(err, &target)
}
