package detector_test

import (
	"testing"

	"go.trai.ch/derp/internal/adapters/detector"
)

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{
			name:    "CI=true forces plain mode",
			ciValue: "true",
		},
		{
			name:    "CI=1 forces plain mode",
			ciValue: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)

			if mode := detector.DetectEnvironment(); mode != detector.ModePlain {
				t.Errorf("Expected ModePlain with CI=%s, got %v", tt.ciValue, mode)
			}
		})
	}
}

func TestDetectEnvironmentNoColor(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "1")

	if mode := detector.DetectEnvironment(); mode != detector.ModePlain {
		t.Errorf("Expected ModePlain with NO_COLOR set, got %v", mode)
	}
}

func TestDetectEnvironmentNonTTY(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("NO_COLOR", "")

	// Test binaries never run with stdout attached to a terminal, so the
	// non-TTY branch is the one we can pin down here.
	if mode := detector.DetectEnvironment(); mode != detector.ModePlain {
		t.Errorf("Expected ModePlain without a TTY, got %v", mode)
	}
}
