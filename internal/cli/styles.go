package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/config"
	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/matcher"
	"github.com/jmylchreest/tether/internal/report"
)

func newStylesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles [document]",
		Short: "List the paint styles, colour variables and text styles of a document",
		Args:  cobra.MaximumNArgs(1),
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

			cat, err := catalog.Collect(cmd.Context(), ws.source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				return report.JSON(out, cat.Available())
			}
			return report.Styles(out, cat.Available(), report.Options{Preview: preview(cfg, out)})
		},
	}

	cmd.Flags().StringP(config.FlagFormat, "f", config.FormatTable, "output format (table, json)")
	cmd.Flags().Bool(config.FlagPreview, false, "show colour swatches (default: when stdout is a terminal)")
	return cmd
}

func newMatchCmd(opts *options) *cobra.Command {
	var (
		colour        string
		font          string
		lineHeight    string
		letterSpacing string
	)

	cmd := &cobra.Command{
		Use:   "match [document]",
		Short: "Find the styles closest to a colour or font",
		Long: `Match a literal colour or font against the styles and variables of a document.

Examples:
  # Closest paint styles and colour variables to a colour
  tether match --colour '#fa0a05' design.json

  # Closest text styles to Inter Bold 48 with a 120% line height
  tether match --font Inter/Bold/48 --line-height 120% design.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := matchValue(colour, font, lineHeight, letterSpacing)
			if err != nil {
				return err
			}

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

			cat, err := catalog.Collect(cmd.Context(), ws.source)
			if err != nil {
				return err
			}
			suggestions := matcher.Match(value, cat)

			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				return report.JSON(out, suggestions)
			}
			return report.Suggestions(out, value, suggestions, report.Options{Preview: preview(cfg, out)})
		},
	}

	cmd.Flags().StringVarP(&colour, "colour", "c", "", "colour as #rgb, #rrggbb or #rrggbbaa")
	cmd.Flags().StringVar(&font, "font", "", "font as family/style/size, e.g. Inter/Semi Bold/16")
	cmd.Flags().StringVar(&lineHeight, "line-height", "auto", "line height in px, percent (150%) or auto")
	cmd.Flags().StringVar(&letterSpacing, "letter-spacing", "0", "letter spacing in px or percent")
	cmd.Flags().StringP(config.FlagFormat, "f", config.FormatTable, "output format (table, json)")
	cmd.Flags().Bool(config.FlagPreview, false, "show colour swatches (default: when stdout is a terminal)")
	cmd.MarkFlagsMutuallyExclusive("colour", "font")
	cmd.MarkFlagsOneRequired("colour", "font")
	return cmd
}

func matchValue(colour, font, lineHeight, letterSpacing string) (design.Value, error) {
	if colour != "" {
		c, err := design.ParseHex(colour)
		if err != nil {
			return nil, fmt.Errorf("invalid colour: %w", err)
		}
		return c, nil
	}

	parts := strings.Split(font, "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid font %q: expected family/style/size", font)
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid font size %q", parts[2])
	}

	lh, err := parseMeasure(lineHeight, true)
	if err != nil {
		return nil, fmt.Errorf("invalid line height: %w", err)
	}
	ls, err := parseMeasure(letterSpacing, false)
	if err != nil {
		return nil, fmt.Errorf("invalid letter spacing: %w", err)
	}

	name := design.FontName{Family: strings.TrimSpace(parts[0]), Style: strings.TrimSpace(parts[1])}
	return design.TypographyFromHost(name, size, lh, ls), nil
}

// parseMeasure reads "24", "24px", "150%" and, when allowAuto is set, "auto".
func parseMeasure(s string, allowAuto bool) (design.HostMeasure, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" {
		if !allowAuto {
			return design.HostMeasure{}, errors.New("auto is not allowed")
		}
		return design.HostMeasure{Unit: design.UnitAuto}, nil
	}

	unit := design.UnitPixels
	if trimmed, ok := strings.CutSuffix(s, "%"); ok {
		s, unit = trimmed, design.UnitPercent
	} else {
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return design.HostMeasure{}, fmt.Errorf("%q is not a number", s)
	}
	return design.HostMeasure{Value: v, Unit: unit}, nil
}
