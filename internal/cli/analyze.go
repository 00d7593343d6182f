package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tether/internal/analyzer"
	"github.com/jmylchreest/tether/internal/config"
	"github.com/jmylchreest/tether/internal/metrics"
	"github.com/jmylchreest/tether/internal/report"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var failOnUnbound bool

	cmd := &cobra.Command{
		Use:   "analyze [document]",
		Short: "Report unbound fills, strokes and typography in the selection",
		Long: `Scan the selected layers and everything inside them for colours and text
formatting that are not bound to a style or variable, and suggest the closest
matching paint styles, colour variables and text styles.

Examples:
  # Analyse the selection saved in a snapshot
  tether analyze design.json

  # Analyse specific layers and print JSON
  tether analyze --select 12:4,12:9 --format json design.json.xz

  # Analyse the live document of a host plugin, failing CI if anything is unbound
  tether analyze --host ./figma-host --fail-on-unbound`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts, failOnUnbound)
		},
	}

	cmd.Flags().StringP(config.FlagFormat, "f", config.FormatTable, "output format (table, json)")
	cmd.Flags().Bool(config.FlagPreview, false, "show colour swatches (default: when stdout is a terminal)")
	cmd.Flags().String(config.FlagMetricsFile, "", "write prometheus metrics to this file")
	cmd.Flags().BoolVar(&failOnUnbound, "fail-on-unbound", false, "exit with status 2 when unbound elements are found")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *options, failOnUnbound bool) error {
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

	a := analyzer.New(ws.source).WithLogger(logger)
	var reg *metrics.Registry
	if cfg.MetricsFile != "" {
		reg = metrics.NewRegistry()
		a = a.WithRecorder(reg)
	}

	result, err := a.Analyze(cmd.Context())
	if errors.Is(err, analyzer.ErrNoSelection) {
		return errors.New("nothing selected: select layers in the document or pass --select")
	}
	if err != nil {
		return err
	}

	if reg != nil {
		if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		logger.Debug("metrics written", "path", cfg.MetricsFile)
	}

	out := cmd.OutOrStdout()
	if cfg.Format == config.FormatJSON {
		err = report.JSON(out, result)
	} else {
		err = report.Result(out, result, report.Options{Preview: preview(cfg, out)})
	}
	if err != nil {
		return err
	}

	if failOnUnbound && len(result.Elements) > 0 {
		return fmt.Errorf("%d %w", len(result.Elements), ErrUnbound)
	}
	return nil
}
