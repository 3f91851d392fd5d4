package pdfthumb

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveInputs expands a mix of file paths, directory paths and glob
// patterns into a deduplicated, sorted list of PDF files.
//
// An explicit file argument is included as-is without checking its extension;
// a file that turns out not to be a PDF fails later at the rasterization
// step. Directories are walked recursively for *.pdf (case-insensitive).
// Patterns go through filepath.Glob, with a "**" segment making the match
// recursive. An argument that matches nothing contributes no files and no
// error; the caller reports an empty batch.
func ResolveInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.Mode().IsRegular():
			add(arg)
		case err == nil && info.IsDir():
			matches, err := collectPDFs(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to scan directory %s: %w", arg, err)
			}
			for _, m := range matches {
				add(m)
			}
		case strings.ContainsAny(arg, "*?["):
			matches, err := expandPattern(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
			}
			for _, m := range matches {
				add(m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// collectPDFs walks dir recursively and returns every regular file with a
// .pdf extension, compared case-insensitively.
func collectPDFs(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if isPDF(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isPDF(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".pdf")
}

// expandPattern resolves a glob pattern to PDF files. filepath.Glob has no
// recursive wildcard, so a pattern like dir/**/*.pdf is split at the first
// "**": everything under the fixed prefix is walked and the remainder of the
// pattern is matched against the trailing path components.
func expandPattern(pattern string) ([]string, error) {
	norm := filepath.ToSlash(pattern)
	idx := strings.Index(norm, "**")
	if idx < 0 {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if isPDF(m) {
				files = append(files, m)
			}
		}
		return files, nil
	}

	root := path.Dir(norm[:idx])
	if root == "" {
		root = "."
	}
	suffix := strings.TrimPrefix(norm[idx+2:], "/")
	sufParts := strings.Split(suffix, "/")

	var files []string
	err := filepath.WalkDir(filepath.FromSlash(root), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if matchTail(sufParts, p) && isPDF(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return files, nil
}

// matchTail reports whether the trailing components of p match the pattern
// components. An empty pattern ("dir/**") matches everything under the root.
func matchTail(patParts []string, p string) bool {
	if len(patParts) == 1 && patParts[0] == "" {
		return true
	}

	parts := strings.Split(filepath.ToSlash(p), "/")
	if len(parts) < len(patParts) {
		return false
	}

	tail := strings.Join(parts[len(parts)-len(patParts):], "/")
	ok, err := path.Match(strings.Join(patParts, "/"), tail)
	return err == nil && ok
}
