//go:build windows

package cmdexec

import (
	"os/exec"
)

// intoProcessGroup is a no-op on Windows; exec.CommandContext's termination
// handling is sufficient there.
//
// Parameters:
//   - cmd: The command to configure (unused on Windows)
func intoProcessGroup(cmd *exec.Cmd) {
}

// killProcessGroup kills the command's process. Windows terminates children
// with the parent for console processes, so no group addressing is needed.
//
// Parameters:
//   - cmd: The command whose process should be killed
//
// Returns:
//   - error: Kill failure, nil on success or when the process never started
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
