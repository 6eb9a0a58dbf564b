package domain

// TestReport summarizes one test-runner invocation.
type TestReport struct {
	// Passed and Failed are the counts parsed from the runner's summary line.
	// Both are zero when the summary could not be parsed.
	Passed int
	Failed int

	// ExitCode is the runner's literal exit status.
	ExitCode int

	// Summary is the runner's trailing summary line, if one was seen.
	Summary string
}
