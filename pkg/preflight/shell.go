package preflight

import (
	"os"
	"os/exec"
)

// knownToShell asks the user's shell whether name resolves. The
// 'command -v' built-in runs in a login shell so aliases and functions
// from the user's profile are initialized before the check.
func knownToShell(name string) bool {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return exec.Command(shell, "-l", "-c", "command -v "+name).Run() == nil
}
