// Package analyzer runs one analysis cycle over a document selection: it
// snapshots the style catalog, scans the selected trees and assembles the
// result delivered to callers.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/scan"
)

// ErrNoSelection is returned when the selection is empty. It is distinct from
// a successful analysis that found nothing.
var ErrNoSelection = errors.New("no selection")

// Source provides the selection roots and the style catalog of a document.
type Source interface {
	catalog.Collector

	// Roots returns the selected nodes in selection order.
	Roots(ctx context.Context) ([]design.Node, error)
}

// Recorder receives the outcome of every completed analysis.
type Recorder interface {
	RecordAnalysis(elements []scan.Element, totalNodes int, elapsed time.Duration)
}

// Result is the outcome of one analysis cycle.
type Result struct {
	Elements        []scan.Element           `json:"elements"`
	TotalNodes      int                      `json:"totalNodes"`
	AvailableStyles []catalog.AvailableStyle `json:"availableStyles"`
}

// Counts returns the number of fill, stroke and typography elements.
func (r *Result) Counts() map[scan.Kind]int {
	counts := map[scan.Kind]int{scan.KindFill: 0, scan.KindStroke: 0, scan.KindTypography: 0}
	for _, e := range r.Elements {
		counts[e.Kind]++
	}
	return counts
}

// Analyzer runs analyses against a Source.
type Analyzer struct {
	source   Source
	logger   hclog.Logger
	recorder Recorder
}

// New creates an analyzer for source with logging disabled.
func New(source Source) *Analyzer {
	return &Analyzer{
		source: source,
		logger: hclog.NewNullLogger(),
	}
}

// WithLogger sets the logger used for debug timings and counts.
func (a *Analyzer) WithLogger(logger hclog.Logger) *Analyzer {
	if logger != nil {
		a.logger = logger.Named("analyzer")
	}
	return a
}

// WithRecorder sets a recorder notified after every successful analysis.
func (a *Analyzer) WithRecorder(r Recorder) *Analyzer {
	a.recorder = r
	return a
}

// Analyze runs one full cycle. The catalog is snapshotted once and used for
// every element of the cycle.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	start := time.Now()

	roots, err := a.source.Roots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	if len(roots) == 0 {
		return nil, ErrNoSelection
	}

	cat, err := catalog.Collect(ctx, a.source)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("collected catalog",
		"paint_styles", len(cat.PaintStyles),
		"variables", len(cat.ColourVariables),
		"text_styles", len(cat.TextStyles))

	elements := scan.Colour(roots, cat.PaintStyles, cat.ColourVariables)
	colourCount := len(elements)
	elements = append(elements, scan.Typography(roots, cat.TextStyles)...)

	result := &Result{
		Elements:        elements,
		TotalNodes:      design.CountNodes(roots),
		AvailableStyles: cat.Available(),
	}

	elapsed := time.Since(start)
	a.logger.Debug("analysis complete",
		"roots", len(roots),
		"nodes", result.TotalNodes,
		"colour_elements", colourCount,
		"typography_elements", len(elements)-colourCount,
		"elapsed", elapsed)

	if a.recorder != nil {
		a.recorder.RecordAnalysis(result.Elements, result.TotalNodes, elapsed)
	}
	return result, nil
}
