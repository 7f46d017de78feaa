package formatter

import (
	"fmt"
	"strings"

	"github.com/planscope/planscope/internal/capacity"
	"github.com/planscope/planscope/internal/domain"
)

// loadWarnThreshold marks days where a team is committed beyond its full
// capacity.
const loadWarnThreshold = 100.0

// FormatCapacityTable renders the per-day capacity breakdown: one row per
// date, one column per team, then the org total and per-team average.
// Teams appear in the given order; teams absent from the table render as
// zero. Team names fall back to ids.
func FormatCapacityTable(table *capacity.Table, teams []*domain.Team) string {
	if len(table.Dates) == 0 {
		return Dim("no capacity data for the current selection") + "\n"
	}

	headers := []string{"DATE"}
	aligns := []Align{AlignLeft}
	for _, t := range teams {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		headers = append(headers, strings.ToUpper(name))
		aligns = append(aligns, AlignRight)
	}
	headers = append(headers, "ORG", "AVG/TEAM")
	aligns = append(aligns, AlignRight, AlignRight)

	rows := make([][]string, 0, len(table.Dates))
	for i, date := range table.Dates {
		row := []string{date}
		for _, t := range teams {
			row = append(row, formatLoad(seriesAt(table.TeamLoad[t.ID], i)))
		}
		row = append(row,
			formatLoad(seriesAt(table.OrgTotal, i)),
			formatLoad(seriesAt(table.OrgPerTeamAvg, i)),
		)
		rows = append(rows, row)
	}
	return RenderTable(headers, rows, aligns)
}

// FormatProjectLoad renders the normalized per-project series: each value
// is the project's share of total org capacity on that day.
func FormatProjectLoad(table *capacity.Table, projects []*domain.Project) string {
	if len(table.Dates) == 0 {
		return Dim("no capacity data for the current selection") + "\n"
	}

	headers := []string{"DATE"}
	aligns := []Align{AlignLeft}
	for _, p := range projects {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		headers = append(headers, strings.ToUpper(name))
		aligns = append(aligns, AlignRight)
	}

	rows := make([][]string, 0, len(table.Dates))
	for i, date := range table.Dates {
		row := []string{date}
		for _, p := range projects {
			row = append(row, formatLoad(seriesAt(table.ProjectLoadNormalized[p.ID], i)))
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows, aligns)
}

func seriesAt(series []float64, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i]
}

func formatLoad(v float64) string {
	s := fmt.Sprintf("%.0f%%", v)
	if v > loadWarnThreshold {
		return Warn(s)
	}
	if v == 0 {
		return Dim(s)
	}
	return s
}
