package domain

// Aggregate holds the exact multiset counts derived from one ScanResult.
// Every violation contributes one unit to its severity bucket and one to its
// file bucket; files with zero violations still count toward ScannedFiles.
type Aggregate struct {
	BySeverity      map[Severity]int `json:"by_severity"`
	ByFile          map[string]int   `json:"by_file"`
	ScannedFiles    int              `json:"scanned_files"`
	ViolatingFiles  int              `json:"violating_files"`
	TotalViolations int              `json:"total_violations"`
}

// AggregateScan groups the violations of a scan by severity tier and by
// distinct file path. A violation referencing a file outside the scanned set
// is a bookkeeping defect and fails the run with MalformedScanResultError
// rather than being dropped.
func AggregateScan(result ScanResult) (*Aggregate, error) {
	scanned := make(map[string]bool, len(result.ScannedFiles))
	for _, f := range result.ScannedFiles {
		scanned[f] = true
	}

	agg := &Aggregate{
		BySeverity:   make(map[Severity]int),
		ByFile:       make(map[string]int),
		ScannedFiles: len(scanned),
	}
	for _, v := range result.Violations {
		if !scanned[v.FilePath] {
			return nil, &MalformedScanResultError{
				FilePath: v.FilePath,
				Detail:   "violation references a file outside the scanned set",
			}
		}
		agg.BySeverity[v.Severity]++
		agg.ByFile[v.FilePath]++
		agg.TotalViolations++
	}
	agg.ViolatingFiles = len(agg.ByFile)
	return agg, nil
}
