// Package fsx probes the file properties a process controller needs
// before spawning: whether a path names an executable, and how a bare
// command name resolves.
package fsx

import (
	"strings"

	"golang.org/x/sys/execabs"
)

// Resolve maps a command to the path that would be spawned. Bare names
// are looked up through PATH; execabs refuses results that resolve to
// relative paths, so the current directory is never searched
// implicitly. Paths containing a separator are returned unchanged.
func Resolve(command string) (string, error) {
	if strings.ContainsAny(command, `/\`) {
		return command, nil
	}
	return execabs.LookPath(command)
}
