package env

import "testing"

func TestGetIntFallback(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		fallback int
		expected int
	}{
		{name: "Unset", fallback: 42, expected: 42},
		{name: "Valid", value: "7", set: true, fallback: 42, expected: 7},
		{name: "Garbage", value: "seven", set: true, fallback: 42, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("PDFTHUMB_TEST_INT", tt.value)
			}
			if got := GetInt("PDFTHUMB_TEST_INT", tt.fallback); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestGetFloatFallback(t *testing.T) {
	t.Setenv("PDFTHUMB_TEST_FLOAT", "0.45")
	if got := GetFloat("PDFTHUMB_TEST_FLOAT", 0.6); got != 0.45 {
		t.Errorf("expected 0.45, got %g", got)
	}
	if got := GetFloat("PDFTHUMB_TEST_FLOAT_MISSING", 0.6); got != 0.6 {
		t.Errorf("expected fallback 0.6, got %g", got)
	}
}
