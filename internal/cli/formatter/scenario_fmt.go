package formatter

import (
	"strconv"

	"github.com/planscope/planscope/internal/contract"
)

// FormatScenarioList renders the scenario list, baseline first. The active
// row carries an arrow marker; unsaved scenarios are flagged.
func FormatScenarioList(infos []contract.ScenarioInfo) string {
	headers := []string{"", "NAME", "ID", "OVERRIDES", "STATE"}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		marker := ""
		if info.Active {
			marker = Good("▸")
		}
		state := ""
		switch {
		case info.Readonly:
			state = Dim("readonly")
		case info.Dirty:
			state = Changed("unsaved")
		default:
			state = "saved"
		}
		id := info.ID
		if id == "" {
			id = Dim("-")
		}
		rows = append(rows, []string{
			marker,
			info.Name,
			id,
			strconv.Itoa(info.OverrideCount),
			state,
		})
	}
	return RenderTable(headers, rows, []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft})
}
