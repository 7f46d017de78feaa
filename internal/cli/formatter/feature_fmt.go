package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/planscope/planscope/internal/domain"
)

// FormatFeatureList renders effective features as a table. Features whose
// dates diverge from baseline carry a change marker and show which fields
// moved.
func FormatFeatureList(features []*domain.EffectiveFeature) string {
	headers := []string{"", "ID", "KIND", "NAME", "PROJECT", "START", "END", "STATUS", "CHANGED"}
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		marker := ""
		if f.Dirty {
			marker = Changed("*")
		}
		rows = append(rows, []string{
			marker,
			f.ID,
			string(f.Kind),
			f.Name,
			f.ProjectID,
			formatDate(f.Start),
			formatDate(f.End),
			f.Status,
			changedFields(f.ChangedFields),
		})
	}
	return RenderTable(headers, rows, nil)
}

// FormatFeatureDetail renders a single effective feature with its
// allocations.
func FormatFeatureDetail(f *domain.EffectiveFeature) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Header(f.Name), Dim(f.ID))
	fmt.Fprintf(&b, "kind:    %s\n", f.Kind)
	fmt.Fprintf(&b, "project: %s\n", f.ProjectID)
	if f.ParentEpic != "" {
		fmt.Fprintf(&b, "epic:    %s\n", f.ParentEpic)
	}
	fmt.Fprintf(&b, "span:    %s .. %s\n", formatDate(f.Start), formatDate(f.End))
	fmt.Fprintf(&b, "status:  %s\n", f.Status)
	if f.ScenarioOverride {
		fmt.Fprintf(&b, "override: %s\n", Changed(changedFields(f.ChangedFields)))
	}
	if len(f.Allocations) > 0 {
		b.WriteString("allocations:\n")
		for _, a := range f.Allocations {
			fmt.Fprintf(&b, "  %s  %.0f%%\n", a.TeamID, a.Load)
		}
	}
	return b.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return Dim("-")
	}
	return domain.DateString(*t)
}

func changedFields(fields []domain.FieldName) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}
