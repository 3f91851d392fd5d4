package util

import (
	"strings"
	"testing"
)

func TestAddUniquePrefixToFileName(t *testing.T) {
	filename := "testfile.pdf"
	result := AddUniquePrefixToFileName(filename)

	if !strings.HasSuffix(result, "_testfile.pdf") {
		t.Errorf("Expected filename to have unique prefix, got %s", result)
	}

	prefix := strings.Split(result, "_")[0]
	if len(prefix) == 0 {
		t.Errorf("Expected a non-empty unique prefix, got %s", prefix)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "scan.pdf", expected: "scan.pdf"},
		{name: "Unix path", input: "../../etc/passwd", expected: "passwd"},
		{name: "Windows path", input: "C:\\Users\\Pann\\scan.pdf", expected: "scan.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSafePathComponent(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"V1StGXR8_Z5jdHi6B-myT", true},
		{"job42", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{"a\\b", false},
	}

	for _, tt := range tests {
		if got := SafePathComponent(tt.input); got != tt.expected {
			t.Errorf("SafePathComponent(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
