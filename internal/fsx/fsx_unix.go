//go:build !windows

package fsx

import "os"

// IsExecutable reports whether path names an existing regular file with
// at least one execute bit set.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
