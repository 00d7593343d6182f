package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/scan"
)

// bindFlags are shared by connect and create-style.
type bindFlags struct {
	node   string
	kind   string
	index  int
	output string
}

func (f *bindFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.node, "node", "", "id of the node to bind")
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(scan.KindFill), "element type (fill, stroke, typography)")
	cmd.Flags().IntVarP(&f.index, "index", "i", 0, "paint index within the fills or strokes")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the document here instead of in place")
	_ = cmd.MarkFlagRequired("node")
}

// paintIndex returns the index for paint kinds and nil for typography.
func (f *bindFlags) paintIndex() *int {
	if scan.Kind(f.kind) == scan.KindTypography {
		return nil
	}
	i := f.index
	return &i
}

func newConnectCmd(opts *options) *cobra.Command {
	var (
		flags bindFlags
		style string
	)

	cmd := &cobra.Command{
		Use:   "connect [document]",
		Short: "Bind an element to an existing style or variable",
		Long: `Bind a fill, stroke or text node to a paint style, colour variable or text style.

Binding a paint style replaces every paint of the fills or strokes with the
style. Binding a colour variable only affects the paint at --index.

Examples:
  # Bind the second fill of node 1:5 to a colour variable
  tether connect --node 1:5 --index 1 --style VariableID:3:1 design.json

  # Bind a text node to a text style and write a copy
  tether connect --node 1:3 --type typography --style S:abc --output fixed.json design.json`,
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

			err = ws.binder.Connect(cmd.Context(), binding.ConnectRequest{
				NodeID:     flags.node,
				StyleID:    style,
				Kind:       scan.Kind(flags.kind),
				PaintIndex: flags.paintIndex(),
			})
			if err != nil {
				return err
			}

			path, err := ws.save(flags.output)
			if err != nil {
				return err
			}
			if path != "" {
				logger.Debug("document saved", "path", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Connected %s %s to %s\n", flags.node, flags.kind, style)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&style, "style", "s", "", "id of the style or variable")
	_ = cmd.MarkFlagRequired("style")
	return cmd
}

func newCreateStyleCmd(opts *options) *cobra.Command {
	var (
		flags bindFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "create-style [document]",
		Short: "Create a style from an element and bind the element to it",
		Long: `Create a paint style from the colour of a fill or stroke, or a text style
from the formatting of a text node, then bind the element to the new style.

Example:
  tether create-style --node 1:3 --type typography --name "Heading/XL" design.json`,
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

			created, err := ws.binder.CreateStyle(cmd.Context(), binding.CreateStyleRequest{
				NodeID:     flags.node,
				Kind:       scan.Kind(flags.kind),
				StyleName:  name,
				PaintIndex: flags.paintIndex(),
			})
			if err != nil {
				return err
			}

			path, err := ws.save(flags.output)
			if err != nil {
				return err
			}
			if path != "" {
				logger.Debug("document saved", "path", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s style %q (%s)\n", created.Kind, created.Name, created.ID)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the new style")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
