//go:build windows

package fsx

import (
	"os"
	"path/filepath"
	"strings"
)

// executableExts are the extensions Windows treats as runnable.
var executableExts = []string{".exe", ".bat", ".cmd", ".com"}

// IsExecutable reports whether path names an existing regular file with
// a runnable extension.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range executableExts {
		if ext == e {
			return true
		}
	}
	return false
}
