package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treykane/listings/internal/overlay"
)

type placeOptions struct {
	anchor   string
	panel    string
	viewport string
	side     string
	sides    string
	arrow    bool
	metrics  overlay.Metrics
}

// newPlaceCmd exposes the placement engine directly, which is handy for
// checking how a panel would land without starting the UI.
func newPlaceCmd() *cobra.Command {
	opts := &placeOptions{metrics: overlay.CellMetrics}

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where a panel lands next to an anchor",
		Example: `  listings place --anchor 0,100,18,1 --panel 18,4 --viewport 120,30 --sides vertical
  listings place --anchor 3,2,44,1 --panel 32,9 --viewport 120,30 --arrow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			placement, err := opts.place()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatPlacement(placement))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.anchor, "anchor", "", "anchor rectangle as top,left,width,height")
	f.StringVar(&opts.panel, "panel", "", "panel size as width,height")
	f.StringVar(&opts.viewport, "viewport", "80,24", "viewport size as width,height")
	f.StringVar(&opts.side, "side", "auto", "preferred side: auto, top, bottom, left or right")
	f.StringVar(&opts.sides, "sides", "all", "candidate sides for auto placement: all, vertical or horizontal")
	f.BoolVar(&opts.arrow, "arrow", false, "reserve room for an arrow and report its offset")
	f.Float64Var(&opts.metrics.Gap, "gap", opts.metrics.Gap, "distance between anchor and panel")
	f.Float64Var(&opts.metrics.Margin, "margin", opts.metrics.Margin, "minimum distance from the viewport edges")
	f.Float64Var(&opts.metrics.ArrowSize, "arrow-size", opts.metrics.ArrowSize, "arrow extent")
	f.Float64Var(&opts.metrics.ArrowInset, "arrow-inset", opts.metrics.ArrowInset, "minimum arrow distance from panel corners")
	_ = cmd.MarkFlagRequired("anchor")
	_ = cmd.MarkFlagRequired("panel")
	return cmd
}

func (o *placeOptions) place() (overlay.Placement, error) {
	a, err := parseNumbers("anchor", o.anchor, 4)
	if err != nil {
		return overlay.Placement{}, err
	}
	p, err := parseNumbers("panel", o.panel, 2)
	if err != nil {
		return overlay.Placement{}, err
	}
	v, err := parseNumbers("viewport", o.viewport, 2)
	if err != nil {
		return overlay.Placement{}, err
	}
	side, err := overlay.ParseSide(o.side)
	if err != nil {
		return overlay.Placement{}, err
	}
	sides, err := parseSides(o.sides)
	if err != nil {
		return overlay.Placement{}, err
	}

	placer := overlay.Placer{Metrics: o.metrics, ShowArrow: o.arrow, Sides: sides}
	anchor := overlay.Rect{Top: a[0], Left: a[1], Width: a[2], Height: a[3]}
	return placer.Place(side, anchor,
		overlay.Size{Width: p[0], Height: p[1]},
		overlay.Size{Width: v[0], Height: v[1]},
	), nil
}

func parseSides(value string) ([]overlay.Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return overlay.AllSides, nil
	case "vertical":
		return overlay.VerticalSides, nil
	case "horizontal":
		return overlay.HorizontalSides, nil
	default:
		return nil, fmt.Errorf("unknown --sides %q", value)
	}
}

// parseNumbers splits a comma-separated list of exactly n non-negative
// numbers.
func parseNumbers(name, value string, n int) ([]float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("--%s needs %d comma-separated numbers, got %q", name, n, value)
	}
	out := make([]float64, n)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		if f < 0 {
			return nil, fmt.Errorf("--%s: %v is negative", name, f)
		}
		out[i] = f
	}
	return out, nil
}

func formatPlacement(p overlay.Placement) string {
	out := fmt.Sprintf("side=%s top=%g left=%g", p.Side, p.Top, p.Left)
	if p.HasArrow {
		out += fmt.Sprintf(" arrow=%g", p.Arrow)
	}
	return out
}
