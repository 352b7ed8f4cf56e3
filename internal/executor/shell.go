package executor

import (
	"os"
	"os/exec"
)

// ShellLauncher runs segments through the user's shell with the launcher's
// own terminal attached, so interactive child programs behave normally.
type ShellLauncher struct {
	Shell string
}

// NewShellLauncher picks the user's $SHELL, falling back to /bin/sh.
func NewShellLauncher() *ShellLauncher {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	if _, err := os.Stat(shell); err != nil {
		shell = "/bin/sh"
	}
	return &ShellLauncher{Shell: shell}
}

// Command builds the exec.Cmd for a segment without starting it. Chains are
// pre-split by the Executor, so the shell only ever sees one segment at a
// time and never reinterprets chaining.
func (l *ShellLauncher) Command(segment string) *exec.Cmd {
	cmd := exec.Command(l.Shell, "-c", segment)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Run starts the segment and blocks until it exits, reporting the exit code.
// A non-nil error is returned only when the process could not be started.
func (l *ShellLauncher) Run(segment string) (int, error) {
	cmd := l.Command(segment)
	if err := cmd.Start(); err != nil {
		return -1, err
	}
	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
