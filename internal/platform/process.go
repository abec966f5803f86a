package platform

import (
	"fmt"
	"os"
	"os/exec"
)

// Restart starts a fresh copy of the running executable with the same
// arguments and environment. The caller is expected to quit afterwards.
func Restart() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to restart %s: %w", exe, err)
	}
	return cmd.Process.Release()
}
