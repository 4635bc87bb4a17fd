package subproc

import (
	"os"
	"sort"
)

// Descriptor is the immutable configuration for one child process.
// The controller treats it as read-only for its whole lifetime.
type Descriptor struct {
	// Path is the executable to spawn. Bare command names are resolved
	// through PATH at construction; relative lookups never succeed
	// implicitly.
	Path string

	// Args are the arguments passed to the executable, in order. The
	// executable name itself is not repeated here.
	Args []string

	// Env holds environment variables for the child. By default they
	// are layered over the ambient environment; with ReplaceEnv they
	// become the child's entire environment.
	Env        map[string]string
	ReplaceEnv bool

	// Dir is the child's working directory. Empty means inherit.
	Dir string

	// Policy, when non-nil, enables automatic escalating-signal
	// management of the process.
	Policy *Policy
}

// environ builds the []string environment for exec.Cmd. nil means
// inherit the ambient environment unchanged.
func (d *Descriptor) environ() []string {
	if d.ReplaceEnv {
		env := make([]string, 0, len(d.Env))
		for _, k := range sortedKeys(d.Env) {
			env = append(env, k+"="+d.Env[k])
		}
		return env
	}
	if len(d.Env) == 0 {
		return nil
	}
	env := os.Environ()
	for _, k := range sortedKeys(d.Env) {
		env = append(env, k+"="+d.Env[k])
	}
	return env
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
