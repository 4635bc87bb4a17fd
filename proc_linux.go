//go:build linux

package subproc

import "syscall"

// setPdeathsig ensures the child is killed if this process dies.
// Pdeathsig is not available on other Unixes at the struct level.
func setPdeathsig(attr *syscall.SysProcAttr) {
	attr.Pdeathsig = syscall.SIGKILL
}
