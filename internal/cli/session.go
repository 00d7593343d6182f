package cli

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tether/internal/analyzer"
	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/session"
)

func newSessionCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "session [document]",
		Short: "Serve the JSON-lines message protocol on stdin and stdout",
		Long: `Read one JSON message per line from stdin and answer on stdout.

Requests:
  {"type":"analyze"}
  {"type":"connect-element","nodeId":"1:5","styleId":"S:red","elementType":"fill","paintIndex":0}
  {"type":"create-style","nodeId":"1:3","elementType":"typography","styleName":"Heading"}

Responses are analysis-result, connection-success, style-created, error and
no-selection messages. Every successful change triggers a new analysis.

With a document file, --output saves the document after every change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			ws, err := opts.open(cmd, args, cfg, logger)
			if err != nil {
				return err
			}
			defer ws.Close()

			var binder binding.Binder = ws.binder
			if output != "" {
				binder = &savingBinder{Binder: ws.binder, ws: ws, output: output, logger: logger}
			}

			a := analyzer.New(ws.source).WithLogger(logger)
			return session.New(a, binder, cmd.OutOrStdout()).
				WithLogger(logger).
				Run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "save the document here after every change")
	return cmd
}

// savingBinder writes the workspace document after every successful change.
type savingBinder struct {
	binding.Binder
	ws     *workspace
	output string
	logger hclog.Logger
}

func (b *savingBinder) Connect(ctx context.Context, req binding.ConnectRequest) error {
	if err := b.Binder.Connect(ctx, req); err != nil {
		return err
	}
	return b.save()
}

func (b *savingBinder) CreateStyle(ctx context.Context, req binding.CreateStyleRequest) (*binding.Created, error) {
	created, err := b.Binder.CreateStyle(ctx, req)
	if err != nil {
		return nil, err
	}
	return created, b.save()
}

func (b *savingBinder) save() error {
	path, err := b.ws.save(b.output)
	if err != nil {
		return err
	}
	b.logger.Debug("document saved", "path", path)
	return nil
}
