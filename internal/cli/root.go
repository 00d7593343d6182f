// Package cli provides the command-line interface for tether.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/tether/internal/config"
	"github.com/jmylchreest/tether/internal/report"
	"github.com/jmylchreest/tether/internal/version"
)

// ErrUnbound is returned by analyze --fail-on-unbound when the selection
// contains unbound elements.
var ErrUnbound = errors.New("unbound elements found")

// Exit codes.
const (
	exitError   = 1
	exitUnbound = 2
)

// options holds the global flags of one command tree.
type options struct {
	configFile string
	verbose    bool
	quiet      bool
	selection  []string
}

// NewRootCmd builds the tether command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   version.Name,
		Short: "Find colours and text that are not bound to a design system",
		Long: `tether audits a design document for fills, strokes and text whose values are
set by hand instead of coming from a shared style or variable.

For every unbound element it suggests the closest matching paint style,
colour variable or text style, and can bind the element for you.

Documents are read from a JSON snapshot (optionally .xz compressed, local or
over http) or from a running document host plugin given with --host.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/tether/config.yaml)")
	pf.StringSliceVar(&opts.selection, "select", nil, "node ids to analyse instead of the document selection")
	pf.String(config.FlagHost, "", "document host plugin binary to read from instead of a file")
	pf.Int64(config.FlagMaxBytes, 0, "maximum document size in bytes")
	pf.Duration(config.FlagTimeout, 0, "timeout for remote documents")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newStylesCmd(opts),
		newMatchCmd(opts),
		newConnectCmd(opts),
		newCreateStyleCmd(opts),
		newSessionCmd(opts),
		newVersionCmd(),
	)
	return root
}

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUnbound):
		return exitUnbound
	default:
		return exitError
	}
}

// logger builds the root logger from --verbose and --quiet.
func (o *options) logger(w io.Writer) hclog.Logger {
	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   version.Name,
		Level:  level,
		Output: w,
		Color:  hclog.AutoColor,
	})
}

// resolve resolves settings for cmd: defaults, file, environment, then flags.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	path, required := o.configFile, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.NewBuilder().
		WithFile(path, required).
		WithEnvConfig().
		WithFlags(cmd.Flags()).
		Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// preview reports whether colour swatches should be drawn on w.
func preview(cfg config.Config, w io.Writer) bool {
	switch cfg.Preview {
	case config.PreviewAlways:
		return true
	case config.PreviewNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return report.JSON(cmd.OutOrStdout(), version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
