//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// intoProcessGroup puts the command in its own process group so a timeout
// can take down every child it spawned, not just the shell.
//
// Parameters:
//   - cmd: The command to configure before it starts
func intoProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup sends SIGKILL to the command's whole process group. The
// negative PID addresses the group rather than the single process.
//
// Parameters:
//   - cmd: The command whose process group should be killed
//
// Returns:
//   - error: Kill failure, nil on success or when the process never started
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
