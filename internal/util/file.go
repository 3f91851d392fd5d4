package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Example output for "ex.pdf": "21313123123_ex.pdf"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix := fmt.Sprintf("%d", time.Now().UnixNano())
	return fmt.Sprintf("%s_%s", uniquePrefix, fileName)
}

// SanitizeFileName strips any directory components from an uploaded file
// name so it cannot escape its job directory.
func SanitizeFileName(fileName string) string {
	fileName = strings.ReplaceAll(fileName, "\\", "/")
	return filepath.Base(fileName)
}

// SafePathComponent reports whether s can be used as a single path component.
func SafePathComponent(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}

func GetTempDir() string {
	return fmt.Sprintf("%s/pdfthumb", os.TempDir())
}

func CreateTemp(pattern string) (*os.File, error) {
	tempDir := GetTempDir()
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return os.CreateTemp(tempDir, pattern)
}
