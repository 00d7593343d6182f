// Package report renders analysis results for the terminal and as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jmylchreest/tether/internal/analyzer"
	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/matcher"
	"github.com/jmylchreest/tether/internal/scan"
)

// Options controls terminal rendering.
type Options struct {
	// Preview prints a colour swatch beside every colour.
	Preview bool
}

var (
	borderColour = lipgloss.Color("#6c7086")
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	exactStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	closestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Summary describes a result in one line.
func Summary(r *analyzer.Result) string {
	counts := r.Counts()
	return fmt.Sprintf("Scanned %d nodes: %d unbound (%d fills, %d strokes, %d typography)",
		r.TotalNodes,
		len(r.Elements),
		counts[scan.KindFill],
		counts[scan.KindStroke],
		counts[scan.KindTypography])
}

// Result writes a summary line and a table with one row per unbound element.
func Result(w io.Writer, r *analyzer.Result, opts Options) error {
	if _, err := fmt.Fprintln(w, Summary(r)); err != nil {
		return err
	}
	if len(r.Elements) == 0 {
		_, err := fmt.Fprintln(w, "Everything in the selection is bound to a style or variable.")
		return err
	}

	rows := make([][]string, 0, len(r.Elements))
	for _, e := range r.Elements {
		kind := string(e.Kind)
		if e.PaintIndex != nil {
			kind = fmt.Sprintf("%s[%d]", e.Kind, *e.PaintIndex)
		}
		rows = append(rows, []string{
			e.LayerPath,
			kind,
			Value(e.CurrentValue, opts),
			suggestions(e.Suggestions, opts),
		})
	}

	_, err := fmt.Fprintln(w, newTable("Layer", "Type", "Value", "Suggestions").Rows(rows...))
	return err
}

// Styles writes the available style list.
func Styles(w io.Writer, styles []catalog.AvailableStyle, opts Options) error {
	if len(styles) == 0 {
		_, err := fmt.Fprintln(w, "The document has no styles or colour variables.")
		return err
	}

	rows := make([][]string, 0, len(styles))
	for _, s := range styles {
		var value string
		switch {
		case s.Colour != nil:
			value = Value(*s.Colour, opts)
		case s.Typography != nil:
			value = Value(*s.Typography, opts)
		}
		rows = append(rows, []string{s.ID, s.Name, string(s.Type), value})
	}

	_, err := fmt.Fprintln(w, newTable("ID", "Name", "Type", "Value").Rows(rows...))
	return err
}

// Suggestions writes the suggestions for a single literal value.
func Suggestions(w io.Writer, value design.Value, list []matcher.Suggestion, opts Options) error {
	if _, err := fmt.Fprintf(w, "%s\n", Value(value, opts)); err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, faintStyle.Render("no matching styles"))
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.StyleID,
			s.StyleName,
			matchLabel(s),
			Value(s.StyleValue, opts),
		})
	}
	_, err := fmt.Fprintln(w, newTable("ID", "Name", "Match", "Value").Rows(rows...))
	return err
}

// Value formats a colour as hex (with a swatch when previewing) and
// typography as its compact description.
func Value(v design.Value, opts Options) string {
	switch v := v.(type) {
	case design.Colour:
		if opts.Preview {
			return Swatch(v, swatchWidth) + " " + v.Hex()
		}
		return v.Hex()
	case nil:
		return ""
	default:
		return v.String()
	}
}

func suggestions(list []matcher.Suggestion, opts Options) string {
	if len(list) == 0 {
		return faintStyle.Render("none")
	}
	lines := make([]string, 0, len(list))
	for _, s := range list {
		line := fmt.Sprintf("%s %s", s.StyleName, matchLabel(s))
		if c, ok := s.StyleValue.(design.Colour); ok && opts.Preview {
			line = Swatch(c, 2) + " " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func matchLabel(s matcher.Suggestion) string {
	label := fmt.Sprintf("%s %d%%", s.MatchType, s.Confidence)
	if s.MatchType == matcher.MatchExact {
		return exactStyle.Render(label)
	}
	return closestStyle.Render(label)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColour)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}
