package executor

import (
	"context"
	"errors"
)

// MockProcessRunner is a ProcessRunner for tests.
type MockProcessRunner struct {
	// Stdout and Stderr are returned from every call.
	Stdout, Stderr []byte

	// Err fails every call.
	Err error

	// ShouldTimeout blocks until the context is cancelled.
	ShouldTimeout bool

	CallCount int
	LastPath  string
	LastArgs  []string
}

// Output records the call and replays the configured result.
func (m *MockProcessRunner) Output(ctx context.Context, path string, args ...string) ([]byte, []byte, error) {
	m.CallCount++
	m.LastPath = path
	m.LastArgs = args

	if m.ShouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return m.Stdout, m.Stderr, m.Err
}

// NewSuccessMockProcessRunner creates a mock that prints stdout and succeeds.
func NewSuccessMockProcessRunner(stdout []byte) *MockProcessRunner {
	return &MockProcessRunner{Stdout: stdout}
}

// NewErrorMockProcessRunner creates a mock that exits with status 1 and
// errMsg on stderr.
func NewErrorMockProcessRunner(errMsg string) *MockProcessRunner {
	return &MockProcessRunner{Stderr: []byte(errMsg), Err: errors.New("exit status 1")}
}
