package cmdexec

// defaultShell is the Unix fallback when SHELL is unset. Plain "sh -c" skips
// the login flag: with no user shell there is no profile worth loading.
//
// Returns:
//   - shell: The shell executable
//   - args: Arguments that make the shell run a command string
func defaultShell() (shell string, args []string) {
	return "sh", []string{"-c"}
}
