// Package executor runs an external document host and exposes it as an
// analysis source and binder.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/document"
	"github.com/jmylchreest/tether/internal/plugin/protocol"
	pkgplugin "github.com/jmylchreest/tether/pkg/plugin"
)

// probeTimeout bounds the --host-info query.
const probeTimeout = 5 * time.Second

// Host is a document host process. Every call to Roots takes a fresh
// snapshot; catalog reads use the snapshot of the latest Roots call so that
// one analysis cycle sees one consistent document.
type Host struct {
	path   string
	logger hclog.Logger
	runner ProcessRunner

	client *plugin.Client
	remote pkgplugin.DocumentHost

	doc       *document.Document
	selection []string
}

// New creates a Host for the binary at path. The process is started on first use.
func New(path string, logger hclog.Logger) *Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Host{
		path:   path,
		logger: logger.Named("host"),
		runner: ExecRunner{},
	}
}

// WithRunner sets the runner used for the --host-info probe.
func (h *Host) WithRunner(r ProcessRunner) *Host {
	h.runner = r
	return h
}

// Probe queries the host's metadata without starting an RPC session and
// checks its protocol version.
func (h *Host) Probe(ctx context.Context) (pkgplugin.HostInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	stdout, stderr, err := h.runner.Output(ctx, h.path, pkgplugin.InfoFlag)
	if err != nil {
		if len(stderr) > 0 {
			return pkgplugin.HostInfo{}, fmt.Errorf("failed to query host: %w: %s", err, bytes.TrimSpace(stderr))
		}
		return pkgplugin.HostInfo{}, fmt.Errorf("failed to query host: %w", err)
	}

	var info pkgplugin.HostInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return pkgplugin.HostInfo{}, fmt.Errorf("failed to parse host info: %w", err)
	}
	if info.PluginProtocol != "" && info.PluginProtocol != pkgplugin.PluginProtocolGoPlugin {
		return info, fmt.Errorf("unsupported host protocol: %s", info.PluginProtocol)
	}
	if err := protocol.CheckHost(info.ProtocolVersion); err != nil {
		return info, err
	}
	return info, nil
}

func (h *Host) connect(ctx context.Context) (pkgplugin.DocumentHost, error) {
	if h.remote != nil {
		return h.remote, nil
	}

	info, err := h.Probe(ctx)
	if err != nil {
		return nil, err
	}
	h.logger.Debug("starting document host", "path", h.path, "name", info.Name, "version", info.Version)

	h.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: pkgplugin.Handshake,
		Plugins: map[string]plugin.Plugin{
			pkgplugin.PluginName: &pkgplugin.HostPluginRPC{},
		},
		Cmd:              exec.Command(h.path), // #nosec G204 - host path is chosen by the user
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           h.logger,
	})

	rpcClient, err := h.client.Client()
	if err != nil {
		h.client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(pkgplugin.PluginName)
	if err != nil {
		h.client.Kill()
		return nil, fmt.Errorf("failed to dispense host: %w", err)
	}

	remote, ok := raw.(*pkgplugin.HostRPCClient)
	if !ok {
		h.client.Kill()
		return nil, fmt.Errorf("unexpected host client type %T", raw)
	}
	h.remote = remote
	return remote, nil
}

// Select overrides the host's selection for every following snapshot.
func (h *Host) Select(ids []string) {
	h.selection = ids
}

// Refresh takes a new snapshot from the host.
func (h *Host) Refresh(ctx context.Context) (*document.Document, error) {
	remote, err := h.connect(ctx)
	if err != nil {
		return nil, err
	}

	data, err := remote.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	doc, err := document.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if h.selection != nil {
		doc.Select(h.selection)
	}

	h.logger.Debug("snapshot received", "bytes", len(data), "selection", len(doc.Selection()))
	h.doc = doc
	return doc, nil
}

func (h *Host) current(ctx context.Context) (*document.Document, error) {
	if h.doc != nil {
		return h.doc, nil
	}
	return h.Refresh(ctx)
}

// Roots implements analyzer.Source.
func (h *Host) Roots(ctx context.Context) ([]design.Node, error) {
	doc, err := h.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Roots(ctx)
}

// PaintStyles implements catalog.Collector.
func (h *Host) PaintStyles(ctx context.Context) ([]catalog.PaintStyle, error) {
	doc, err := h.current(ctx)
	if err != nil {
		return nil, err
	}
	return doc.PaintStyles(ctx)
}

// ColourVariables implements catalog.Collector.
func (h *Host) ColourVariables(ctx context.Context) ([]catalog.ColourVariable, error) {
	doc, err := h.current(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ColourVariables(ctx)
}

// TextStyles implements catalog.Collector.
func (h *Host) TextStyles(ctx context.Context) ([]catalog.TextStyle, error) {
	doc, err := h.current(ctx)
	if err != nil {
		return nil, err
	}
	return doc.TextStyles(ctx)
}

// Connect implements binding.Binder by forwarding the request to the host.
func (h *Host) Connect(ctx context.Context, req binding.ConnectRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	remote, err := h.connect(ctx)
	if err != nil {
		return err
	}

	err = remote.Connect(ctx, pkgplugin.ConnectArgs{
		NodeID:      req.NodeID,
		StyleID:     req.StyleID,
		ElementType: string(req.Kind),
		PaintIndex:  req.PaintIndex,
	})
	h.doc = nil
	return err
}

// CreateStyle implements binding.Binder by forwarding the request to the host.
func (h *Host) CreateStyle(ctx context.Context, req binding.CreateStyleRequest) (*binding.Created, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	remote, err := h.connect(ctx)
	if err != nil {
		return nil, err
	}

	style, err := remote.CreateStyle(ctx, pkgplugin.CreateStyleArgs{
		NodeID:      req.NodeID,
		ElementType: string(req.Kind),
		StyleName:   req.StyleName,
		PaintIndex:  req.PaintIndex,
	})
	h.doc = nil
	if err != nil {
		return nil, err
	}
	return &binding.Created{ID: style.ID, Name: style.Name, Kind: req.Kind}, nil
}

// Close stops the host process.
func (h *Host) Close() {
	if h.client != nil {
		h.client.Kill()
		h.client = nil
	}
	h.remote = nil
	h.doc = nil
}
