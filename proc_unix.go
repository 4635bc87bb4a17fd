//go:build !windows

package subproc

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr puts the child in its own process group so signals can
// be addressed to the whole group. Pdeathsig is Linux-only and set
// conditionally in proc_linux.go.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	setPdeathsig(cmd.SysProcAttr)
}

// signalGroup sends sig to the child's process group (negative PID
// targets the group).
func signalGroup(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd.Process == nil {
		return errProcessNotStarted
	}
	return syscall.Kill(-cmd.Process.Pid, sig)
}

// killGroup sends SIGKILL to the child's process group. Killing an
// already-dead group is a silent no-op.
func killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
