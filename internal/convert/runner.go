package convert

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes the external media tools
type Runner interface {
	// Output runs name and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream runs name and hands every standard error line to onLine.
	Stream(ctx context.Context, name string, args []string, onLine func(string)) error
}

// CommandRunner runs tools through os/exec
type CommandRunner struct{}

// NewCommandRunner creates a runner backed by os/exec
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

func (r *CommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (r *CommandRunner) Stream(ctx context.Context, name string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	// keep the tail of the output for the error message
	var tail []string
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if onLine != nil {
			onLine(line)
		}
		if line != "" && !strings.Contains(line, "=") {
			tail = append(tail, line)
			if len(tail) > 3 {
				tail = tail[1:]
			}
		}
	}

	if err := cmd.Wait(); err != nil {
		if len(tail) > 0 {
			return fmt.Errorf("%s failed: %w: %s", name, err, strings.Join(tail, "; "))
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
