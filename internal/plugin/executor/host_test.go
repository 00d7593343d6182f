package executor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tether/internal/analyzer"
	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/document"
	"github.com/jmylchreest/tether/internal/scan"
	pkgplugin "github.com/jmylchreest/tether/pkg/plugin"
)

const samplePath = "../../document/testdata/sample.json"

// fakeHost serves a document from memory and applies bindings to it.
type fakeHost struct {
	doc       *document.Document
	snapshots int
	connects  []pkgplugin.ConnectArgs
	createErr error
}

func newFakeHost(t *testing.T) *fakeHost {
	t.Helper()
	doc, err := document.Load(context.Background(), samplePath, document.LoadOptions{})
	require.NoError(t, err)
	return &fakeHost{doc: doc}
}

func (f *fakeHost) Snapshot(context.Context) ([]byte, error) {
	f.snapshots++
	var buf bytes.Buffer
	if err := f.doc.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *fakeHost) Connect(ctx context.Context, args pkgplugin.ConnectArgs) error {
	f.connects = append(f.connects, args)
	return f.doc.Connect(ctx, binding.ConnectRequest{
		NodeID:     args.NodeID,
		StyleID:    args.StyleID,
		Kind:       scan.Kind(args.ElementType),
		PaintIndex: args.PaintIndex,
	})
}

func (f *fakeHost) CreateStyle(ctx context.Context, args pkgplugin.CreateStyleArgs) (pkgplugin.CreatedStyle, error) {
	if f.createErr != nil {
		return pkgplugin.CreatedStyle{}, f.createErr
	}
	created, err := f.doc.CreateStyle(ctx, binding.CreateStyleRequest{
		NodeID:     args.NodeID,
		Kind:       scan.Kind(args.ElementType),
		StyleName:  args.StyleName,
		PaintIndex: args.PaintIndex,
	})
	if err != nil {
		return pkgplugin.CreatedStyle{}, err
	}
	return pkgplugin.CreatedStyle{ID: created.ID, Name: created.Name}, nil
}

func (f *fakeHost) GetMetadata() pkgplugin.HostInfo {
	return pkgplugin.HostInfo{Name: "fake", ProtocolVersion: pkgplugin.ProtocolVersion}
}

func newTestHost(remote pkgplugin.DocumentHost) *Host {
	h := New("/usr/bin/fake-host", nil)
	h.remote = remote
	return h
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name          string
		runner        *MockProcessRunner
		errorContains string
	}{
		{
			name:   "compatible",
			runner: NewSuccessMockProcessRunner([]byte(`{"name":"figma-bridge","version":"0.3.0","protocol_version":"1.2.0","plugin_protocol":"go-plugin"}`)),
		},
		{
			name:          "incompatible major",
			runner:        NewSuccessMockProcessRunner([]byte(`{"name":"old","protocol_version":"0.9.0"}`)),
			errorContains: "incompatible major version",
		},
		{
			name:          "wrong protocol",
			runner:        NewSuccessMockProcessRunner([]byte(`{"name":"x","protocol_version":"1.0.0","plugin_protocol":"json-stdio"}`)),
			errorContains: "unsupported host protocol",
		},
		{
			name:          "not json",
			runner:        NewSuccessMockProcessRunner([]byte("usage: host")),
			errorContains: "failed to parse host info",
		},
		{
			name:          "process fails",
			runner:        NewErrorMockProcessRunner("cannot open display"),
			errorContains: "cannot open display",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New("/opt/host", nil).WithRunner(tt.runner)
			info, err := h.Probe(context.Background())

			assert.Equal(t, 1, tt.runner.CallCount)
			assert.Equal(t, "/opt/host", tt.runner.LastPath)
			assert.Equal(t, []string{pkgplugin.InfoFlag}, tt.runner.LastArgs)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "figma-bridge", info.Name)
		})
	}
}

func TestProbeTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := New("/opt/host", nil).WithRunner(&MockProcessRunner{ShouldTimeout: true})
	_, err := h.Probe(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHostAnalyze(t *testing.T) {
	fake := newFakeHost(t)
	h := newTestHost(fake)

	result, err := analyzer.New(h).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalNodes)
	assert.Len(t, result.Elements, 4)
	assert.Equal(t, 1, fake.snapshots, "catalog reads reuse the cycle's snapshot")

	_, err = analyzer.New(h).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.snapshots)
}

func TestHostSelectOverride(t *testing.T) {
	h := newTestHost(newFakeHost(t))

	h.Select([]string{"1:7"})
	result, err := analyzer.New(h).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalNodes)
	assert.Empty(t, result.Elements)

	h.Select([]string{})
	_, err = analyzer.New(h).Analyze(context.Background())
	assert.ErrorIs(t, err, analyzer.ErrNoSelection)
}

func TestHostConnect(t *testing.T) {
	fake := newFakeHost(t)
	h := newTestHost(fake)
	ctx := context.Background()

	_, err := h.Refresh(ctx)
	require.NoError(t, err)

	index := 1
	err = h.Connect(ctx, binding.ConnectRequest{NodeID: "1:5", StyleID: "S:red", Kind: scan.KindFill, PaintIndex: &index})
	require.NoError(t, err)
	require.Len(t, fake.connects, 1)
	assert.Equal(t, "fill", fake.connects[0].ElementType)
	assert.Equal(t, 1, *fake.connects[0].PaintIndex)
	assert.Nil(t, h.doc, "writes drop the cached snapshot")

	result, err := analyzer.New(h).Analyze(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Elements, 3)
}

func TestHostConnectValidates(t *testing.T) {
	fake := newFakeHost(t)
	h := newTestHost(fake)

	err := h.Connect(context.Background(), binding.ConnectRequest{NodeID: "1:3", Kind: scan.KindFill})
	require.Error(t, err)
	assert.Empty(t, fake.connects)
}

func TestHostCreateStyle(t *testing.T) {
	fake := newFakeHost(t)
	h := newTestHost(fake)
	ctx := context.Background()

	created, err := h.CreateStyle(ctx, binding.CreateStyleRequest{NodeID: "1:3", Kind: scan.KindTypography, StyleName: "Display"})
	require.NoError(t, err)
	assert.Equal(t, "Display", created.Name)
	assert.Equal(t, scan.KindTypography, created.Kind)

	fake.createErr = errors.New("style name cannot be empty")
	_, err = h.CreateStyle(ctx, binding.CreateStyleRequest{NodeID: "1:3", Kind: scan.KindFill, StyleName: "Ink"})
	require.Error(t, err)
}

func TestCloseWithoutStart(t *testing.T) {
	h := New("/opt/host", nil)
	h.Close()
	assert.Nil(t, h.remote)
}
