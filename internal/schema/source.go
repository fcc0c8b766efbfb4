package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vektah/gqlparser/v2/ast"
)

// ExpandPatterns resolves file patterns (doublestar syntax, e.g. "schema/**/*.graphqls")
// into a sorted, de-duplicated list of file paths.
// A pattern which matches nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched %q", pattern)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	return files, nil
}

// LoadSources reads every file matched by patterns.
func LoadSources(patterns []string) ([]*ast.Source, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	return ReadSources(files)
}

// ReadSources reads files in the given order.
func ReadSources(files []string) ([]*ast.Source, error) {
	sources := make([]*ast.Source, 0, len(files))
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, &ast.Source{
			Name:  file,
			Input: string(b),
		})
	}

	return sources, nil
}

// Exclude drops the files which point at one of excludes.
// Paths are compared in their absolute form.
func Exclude(files []string, excludes ...string) ([]string, error) {
	if len(excludes) == 0 {
		return files, nil
	}

	ignored := make(map[string]bool, len(excludes))
	for _, exclude := range excludes {
		abs, err := filepath.Abs(exclude)
		if err != nil {
			return nil, err
		}
		ignored[abs] = true
	}

	result := make([]string, 0, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		if ignored[abs] {
			continue
		}
		result = append(result, file)
	}

	return result, nil
}

// Match reports whether file matches one of patterns.
// Relative patterns and files are resolved against the working directory.
func Match(patterns []string, file string) bool {
	abs, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	for _, pattern := range patterns {
		absPattern, err := filepath.Abs(pattern)
		if err != nil {
			continue
		}
		ok, err := doublestar.PathMatch(absPattern, abs)
		if err == nil && ok {
			return true
		}
	}
	return false
}
