// Package testutil holds temp-file helpers shared by tests that need
// real executables on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable /bin/sh script into a fresh temp dir
// and returns its path. The directory is removed when the test ends.
func WriteScript(t *testing.T, body string) string {
	t.Helper()
	return WriteFile(t, "script.sh", "#!/bin/sh\n"+body+"\n", 0o755)
}

// WriteFile writes a file with the given name, contents and mode into a
// fresh temp dir and returns its path.
func WriteFile(t *testing.T, name, body string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), mode); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
