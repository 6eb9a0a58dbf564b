package detector_test

import (
	"testing"

	"github.com/morsellabs/dashci/internal/adapters/detector"
)

func TestDetectEnvironment_CIForcesPlain(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true forces plain mode", ciValue: "true"},
		{name: "CI=1 forces plain mode", ciValue: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)

			mode := detector.DetectEnvironment()
			if mode != detector.ModePlain {
				t.Errorf("Expected ModePlain with CI=%s, got %v", tt.ciValue, mode)
			}
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{
			name:         "auto respects auto-detection (pretty)",
			autoDetected: detector.ModePretty,
			userFlag:     "auto",
			expected:     detector.ModePretty,
		},
		{
			name:         "auto respects auto-detection (plain)",
			autoDetected: detector.ModePlain,
			userFlag:     "auto",
			expected:     detector.ModePlain,
		},
		{
			name:         "empty flag respects auto-detection",
			autoDetected: detector.ModePretty,
			userFlag:     "",
			expected:     detector.ModePretty,
		},
		{
			name:         "pretty overrides auto-detection",
			autoDetected: detector.ModePlain,
			userFlag:     "pretty",
			expected:     detector.ModePretty,
		},
		{
			name:         "plain overrides auto-detection",
			autoDetected: detector.ModePretty,
			userFlag:     "plain",
			expected:     detector.ModePlain,
		},
		{
			name:         "ci maps to plain",
			autoDetected: detector.ModePretty,
			userFlag:     "ci",
			expected:     detector.ModePlain,
		},
		{
			name:         "unknown flag falls back to auto-detection",
			autoDetected: detector.ModePretty,
			userFlag:     "fancy",
			expected:     detector.ModePretty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.ResolveMode(tt.autoDetected, tt.userFlag)
			if got != tt.expected {
				t.Errorf("ResolveMode(%v, %q) = %v, want %v", tt.autoDetected, tt.userFlag, got, tt.expected)
			}
		})
	}
}
