package cli

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tether/internal/analyzer"
	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/config"
	"github.com/jmylchreest/tether/internal/document"
	"github.com/jmylchreest/tether/internal/plugin/executor"
)

// workspace is the document a command works on: a loaded snapshot or a
// running host.
type workspace struct {
	source   analyzer.Source
	binder   binding.Binder
	doc      *document.Document
	location string
	host     *executor.Host
}

// open loads args[0], or starts cfg.Host when set.
func (o *options) open(cmd *cobra.Command, args []string, cfg config.Config, logger hclog.Logger) (*workspace, error) {
	if cfg.Host != "" {
		if len(args) > 0 {
			return nil, errors.New("a document cannot be combined with --host")
		}
		host := executor.New(cfg.Host, logger)
		if o.selection != nil {
			host.Select(o.selection)
		}
		return &workspace{source: host, binder: host, host: host}, nil
	}

	if len(args) == 0 {
		return nil, errors.New("a document is required unless --host is set")
	}
	doc, err := document.Load(cmd.Context(), args[0], document.LoadOptions{
		MaxBytes: cfg.MaxDocumentBytes,
		Headers:  cfg.Headers,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if o.selection != nil {
		doc.Select(o.selection)
	}
	logger.Debug("document loaded", "location", args[0], "pages", len(doc.Pages), "selection", len(doc.Selection()))

	return &workspace{source: doc, binder: doc, doc: doc, location: args[0]}, nil
}

// Close stops the host, if any.
func (w *workspace) Close() {
	if w.host != nil {
		w.host.Close()
	}
}

// save writes a loaded document to output, or back to where it was read
// from. Hosts persist their own changes, so save returns "" for them.
func (w *workspace) save(output string) (string, error) {
	if w.doc == nil {
		return "", nil
	}
	path := output
	if path == "" {
		if document.IsRemote(w.location) {
			return "", errors.New("remote documents can only be saved with --output")
		}
		path = w.location
	}
	if err := w.doc.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
