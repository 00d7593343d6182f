// Package filehost serves a document snapshot file as a tether document host.
// Changes are written back to the file after every successful binding.
package filehost

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/document"
	"github.com/jmylchreest/tether/internal/scan"
	"github.com/jmylchreest/tether/internal/version"
	pkgplugin "github.com/jmylchreest/tether/pkg/plugin"
)

// DocumentEnv names the environment variable holding the document path.
// go-plugin starts hosts without arguments.
const DocumentEnv = "TETHER_FILE_HOST_DOCUMENT"

// Host implements pkgplugin.DocumentHost over a document file. RPC calls may
// arrive concurrently, so every access is serialised.
type Host struct {
	path   string
	logger hclog.Logger

	mu  sync.Mutex
	doc *document.Document
}

// New loads the document at path.
func New(ctx context.Context, path string, logger hclog.Logger) (*Host, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	doc, err := document.Load(ctx, path, document.LoadOptions{})
	if err != nil {
		return nil, err
	}
	return &Host{path: path, logger: logger, doc: doc}, nil
}

// Snapshot implements pkgplugin.DocumentHost.
func (h *Host) Snapshot(context.Context) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer
	if err := h.doc.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Connect implements pkgplugin.DocumentHost.
func (h *Host) Connect(ctx context.Context, args pkgplugin.ConnectArgs) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.doc.Connect(ctx, binding.ConnectRequest{
		NodeID:     args.NodeID,
		StyleID:    args.StyleID,
		Kind:       scan.Kind(args.ElementType),
		PaintIndex: args.PaintIndex,
	})
	if err != nil {
		return err
	}
	h.logger.Info("connected", "node", args.NodeID, "style", args.StyleID)
	return h.save()
}

// CreateStyle implements pkgplugin.DocumentHost.
func (h *Host) CreateStyle(ctx context.Context, args pkgplugin.CreateStyleArgs) (pkgplugin.CreatedStyle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	created, err := h.doc.CreateStyle(ctx, binding.CreateStyleRequest{
		NodeID:     args.NodeID,
		Kind:       scan.Kind(args.ElementType),
		StyleName:  args.StyleName,
		PaintIndex: args.PaintIndex,
	})
	if err != nil {
		return pkgplugin.CreatedStyle{}, err
	}
	h.logger.Info("style created", "node", args.NodeID, "style", created.ID, "name", created.Name)
	if err := h.save(); err != nil {
		return pkgplugin.CreatedStyle{}, err
	}
	return pkgplugin.CreatedStyle{ID: created.ID, Name: created.Name}, nil
}

// GetMetadata implements pkgplugin.DocumentHost.
func (h *Host) GetMetadata() pkgplugin.HostInfo {
	return Metadata()
}

// Metadata describes the file host without loading a document.
func Metadata() pkgplugin.HostInfo {
	return pkgplugin.HostInfo{
		Name:            "tether-file-host",
		Version:         version.Version,
		ProtocolVersion: pkgplugin.ProtocolVersion,
		Description:     "Serves a tether document snapshot file",
		PluginProtocol:  pkgplugin.PluginProtocolGoPlugin,
	}
}

func (h *Host) save() error {
	if err := h.doc.Save(h.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", h.path, err)
	}
	return nil
}
