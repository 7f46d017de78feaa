package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls per-column cell alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

const colGap = 2

// RenderTable renders an aligned table with a header separator. aligns may
// be nil (all left) or shorter than the column count; missing entries
// default to left. Widths are measured on visible characters so styled
// cells line up.
func RenderTable(headers []string, rows [][]string, aligns []Align) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	align := func(col int) Align {
		if aligns != nil && col < len(aligns) {
			return aligns[col]
		}
		return AlignLeft
	}

	var b strings.Builder
	writeCell := func(col int, text string, style func(string) string) {
		pad := widths[col] - lipgloss.Width(text)
		if pad < 0 {
			pad = 0
		}
		if align(col) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(style(text))
		if col < cols-1 {
			if align(col) == AlignLeft {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}

	for i, h := range headers {
		writeCell(i, h, Header)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(Dim(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(i, cell, func(s string) string { return s })
		}
		b.WriteString("\n")
	}

	return b.String()
}
