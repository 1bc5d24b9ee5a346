package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudchase/sampling-visualizer/engine"
)

// DefaultBarWidth is the width of a bar at probability 1.
const DefaultBarWidth = 40

// Report is one shaped distribution ready for display.
type Report struct {
	Scenario    string               `json:"scenario,omitempty"`
	Label       string               `json:"label,omitempty"`
	Params      engine.Params        `json:"params"`
	Results     []engine.TokenResult `json:"results"`
	ActiveCount int                  `json:"active_count"`
}

// NewReport assembles a Report and counts its active tokens.
func NewReport(id, label string, p engine.Params, results []engine.TokenResult) Report {
	return Report{
		Scenario:    id,
		Label:       label,
		Params:      p,
		Results:     results,
		ActiveCount: engine.ActiveCount(results),
	}
}

// Percent formats a probability as a percentage with the given decimals.
func Percent(p float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, p*100)
}

// ParamSummary is the one-line description of the controls.
func ParamSummary(p engine.Params) string {
	return fmt.Sprintf("temperature=%.2f  top-k=%d  top-p=%.2f", p.Temperature, p.TopK, p.TopP)
}

// BarString returns a bar of cells proportional to p out of width.
func BarString(p float64, width int) string {
	n := int(math.Round(p * float64(width)))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	if n == 0 && p > 0 {
		return "▏"
	}
	return strings.Repeat("█", n)
}

// Bars writes one row per token in input order. Filtered tokens keep their
// row with an empty, dimmed bar.
func Bars(w io.Writer, t Theme, rep Report, width int) error {
	if width <= 0 {
		width = DefaultBarWidth
	}
	var sb strings.Builder
	if rep.Label != "" {
		sb.WriteString(t.Header.Render(rep.Label))
		sb.WriteString("\n")
	}
	sb.WriteString(t.Accent.Render(ParamSummary(rep.Params)))
	sb.WriteString(t.Dim.Render(fmt.Sprintf("  (%d/%d active)", rep.ActiveCount, len(rep.Results))))
	sb.WriteString("\n\n")

	tokenWidth := 0
	for _, r := range rep.Results {
		tokenWidth = max(tokenWidth, lipgloss.Width(r.Token))
	}
	for _, r := range rep.Results {
		token := r.Token + strings.Repeat(" ", tokenWidth-lipgloss.Width(r.Token))
		bar := BarString(r.Probability, width)
		pad := strings.Repeat(" ", width-lipgloss.Width(bar))
		pct := fmt.Sprintf("%8s", Percent(r.Probability, 2))
		if r.Active {
			sb.WriteString(fmt.Sprintf("  %s  %s%s %s\n", t.Active.Render(token), t.Bar.Render(bar), pad, pct))
		} else {
			sb.WriteString(t.Dim.Render(fmt.Sprintf("  %s  %s%s %s  filtered", token, bar, pad, pct)))
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Table writes a tab-aligned table with 4-decimal percentages.
func Table(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTOKEN\tPROBABILITY\tSTATUS")
	for _, r := range rep.Results {
		status := "active"
		if !r.Active {
			status = "filtered"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.OriginalIndex, r.Token, Percent(r.Probability, 4), status)
	}
	return tw.Flush()
}

// JSON writes rep as indented JSON.
func JSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
