package executor

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// probeWaitDelay bounds how long a probed host may hold its output pipes
// open after the context is cancelled.
const probeWaitDelay = time.Second

// ProcessRunner runs a short-lived host command, such as the --host-info probe.
type ProcessRunner interface {
	// Output runs path with args and returns what it wrote to stdout and stderr.
	Output(ctx context.Context, path string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner implements ProcessRunner with os/exec.
type ExecRunner struct{}

// Output starts the host and waits for it to exit.
func (ExecRunner) Output(ctx context.Context, path string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 - host path is chosen by the user
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = probeWaitDelay

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
