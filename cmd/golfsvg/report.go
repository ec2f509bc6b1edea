package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fairwaylabs/golfsvg"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginTop(1)
	cleanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	unstableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// renderReport builds the human-readable summary printed after a run:
// per-status counts, every flagged path with its reason and vertex
// range, and same-category overlaps when requested.
func renderReport(sources []sourceFeature, results []golfsvg.Result, overlaps map[golfsvg.Category][]golfsvg.IntersectionRecord) string {
	var sb strings.Builder

	counts := map[golfsvg.Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Repaired %d paths", len(results))))
	sb.WriteString("\n")
	sb.WriteString(cleanStyle.Render(fmt.Sprintf("  clean     %d", counts[golfsvg.StatusClean])))
	sb.WriteString("\n")
	sb.WriteString(warnStyle.Render(fmt.Sprintf("  warning   %d", counts[golfsvg.StatusWarning])))
	sb.WriteString("\n")
	sb.WriteString(unstableStyle.Render(fmt.Sprintf("  unstable  %d", counts[golfsvg.StatusUnstable])))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  rejected  %d", counts[golfsvg.StatusRejected])))
	sb.WriteString("\n")

	for i, r := range results {
		if r.Status == golfsvg.StatusClean {
			continue
		}
		style := warnStyle
		if r.Status == golfsvg.StatusUnstable {
			style = unstableStyle
		} else if r.Status == golfsvg.StatusRejected {
			style = dimStyle
		}
		line := fmt.Sprintf("  %-10s %-28s %s", r.Status, sources[i].id, r.Reason)
		if r.Status == golfsvg.StatusUnstable {
			line += " " + r.Range.String()
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	if len(overlaps) > 0 {
		sb.WriteString(titleStyle.Render("Same-category overlaps"))
		sb.WriteString("\n")
		cats := make([]string, 0, len(overlaps))
		for c := range overlaps {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		for _, c := range cats {
			sb.WriteString(warnStyle.Render(fmt.Sprintf("  %-24s %d findings", c, len(overlaps[golfsvg.Category(c)]))))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
