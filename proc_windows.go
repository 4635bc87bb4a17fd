//go:build windows

package subproc

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// setSysProcAttr creates the child in a new process group so console
// control events can be addressed to it.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// signalGroup approximates Unix signals with a console control event:
// CTRL_BREAK_EVENT reaches the whole process group regardless of
// whether the policy asked for SIGINT or SIGTERM.
func signalGroup(cmd *exec.Cmd, _ syscall.Signal) error {
	if cmd.Process == nil {
		return errProcessNotStarted
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(cmd.Process.Pid))
}

// killGroup forcefully terminates the process.
func killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
