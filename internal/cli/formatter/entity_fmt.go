package formatter

import "github.com/planscope/planscope/internal/domain"

// FormatProjectList renders the baseline projects as a table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "COLOR"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, p.Color})
	}
	return RenderTable(headers, rows, nil)
}

// FormatTeamList renders the baseline teams as a table.
func FormatTeamList(teams []*domain.Team) string {
	headers := []string{"ID", "NAME", "COLOR"}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{t.ID, t.Name, t.Color})
	}
	return RenderTable(headers, rows, nil)
}
