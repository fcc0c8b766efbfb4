package testutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// CheckGoldenFile compares actual with the content of expectFilePath.
// A missing golden file is created from actual.
func CheckGoldenFile(t TestingT, actual []byte, expectFilePath string) {
	t.Helper()

	expect, err := os.ReadFile(expectFilePath)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(expectFilePath), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(expectFilePath, actual, 0644); err != nil {
			t.Fatal(err)
		}
		t.Logf("golden file created: %s", expectFilePath)
		return
	} else if err != nil {
		t.Error(err)
		return
	}

	if d := Diff(string(expect), string(actual)); d != "" {
		t.Errorf("%s mismatch\n%s", expectFilePath, d)
	}
}

// Diff returns a unified diff of expect and actual, or an empty string.
func Diff(expect, actual string) string {
	if expect == actual {
		return ""
	}
	d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expect),
		B:        difflib.SplitLines(actual),
		FromFile: "expect",
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		return err.Error()
	}
	return d
}
