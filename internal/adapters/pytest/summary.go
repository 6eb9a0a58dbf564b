package pytest

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/morsellabs/dashci/internal/core/domain"
)

var (
	ansiPattern   = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	passedPattern = regexp.MustCompile(`(\d+) passed`)
	failedPattern = regexp.MustCompile(`(\d+) failed`)
	errorPattern  = regexp.MustCompile(`(\d+) error`)
)

// summaryTracker scans a test runner's output stream for its trailing summary
// line. It is an io.Writer so it can be teed into the live output.
type summaryTracker struct {
	mu   sync.Mutex
	buf  []byte
	last string
}

func (s *summaryTracker) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = append(s.buf, p...)
	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		s.scanLine(string(s.buf[:i]))
		s.buf = s.buf[i+1:]
	}
	return len(p), nil
}

func (s *summaryTracker) scanLine(line string) {
	line = strings.TrimSpace(ansiPattern.ReplaceAllString(line, ""))
	line = strings.TrimSuffix(line, "\r")

	if isSummaryLine(line) {
		s.last = strings.Trim(line, "= ")
	}
}

// Report parses the tracked summary line into a TestReport. Counts stay zero
// when no summary was seen.
func (s *summaryTracker) Report() domain.TestReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The summary is the last line of output and may lack a trailing newline.
	if len(s.buf) > 0 {
		s.scanLine(string(s.buf))
		s.buf = nil
	}

	report := domain.TestReport{Summary: s.last}
	report.Passed = extractCount(passedPattern, s.last)
	report.Failed = extractCount(failedPattern, s.last)
	return report
}

// isSummaryLine matches pytest's final status line, e.g.
// "=== 1 failed, 4 passed in 12.30s ===" or "=== no tests ran in 0.01s ===".
func isSummaryLine(line string) bool {
	if !strings.HasPrefix(line, "=") || !strings.HasSuffix(line, "=") {
		return false
	}
	return passedPattern.MatchString(line) ||
		failedPattern.MatchString(line) ||
		errorPattern.MatchString(line) ||
		strings.Contains(line, "no tests ran")
}

func extractCount(pattern *regexp.Regexp, line string) int {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
