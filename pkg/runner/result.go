package runner

// FileOutcome is the result for one discovered file. Exactly one of File
// and Error is set.
type FileOutcome struct {
	Path  string
	File  *FileResult
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesLinted     int
	FilesErrored    int
	FilesWithIssues int
	FilesFixed      int
	// FilesSkipped counts files whose fixes were not written because they
	// changed on disk during the run.
	FilesSkipped int

	Errors          int
	Warnings        int
	FixableErrors   int
	FixableWarnings int
}

// Result is the outcome of a run, with Files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any error-severity problem was found.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.Errors > 0
}

// HasIssues reports whether any problem was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Errors+r.Stats.Warnings > 0
}

// Problems returns the total number of problems.
func (r *Result) Problems() int {
	if r == nil {
		return 0
	}
	return r.Stats.Errors + r.Stats.Warnings
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	file := outcome.File
	r.Stats.FilesLinted++
	if file.Written {
		r.Stats.FilesFixed++
	}
	if file.Skipped {
		r.Stats.FilesSkipped++
	}

	res := file.Result
	if res == nil {
		return
	}
	if res.HasIssues() {
		r.Stats.FilesWithIssues++
	}
	r.Stats.Errors += res.ErrorCount
	r.Stats.Warnings += res.WarningCount
	r.Stats.FixableErrors += res.FixableErrorCount
	r.Stats.FixableWarnings += res.FixableWarningCount
}
