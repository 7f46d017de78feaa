package formatter

import "github.com/charmbracelet/lipgloss"

// Nord-inspired palette.
var (
	colorCyan   = lipgloss.Color("#88c0d0")
	colorGreen  = lipgloss.Color("#a3be8c")
	colorYellow = lipgloss.Color("#ebcb8b")
	colorRed    = lipgloss.Color("#bf616a")
	colorDim    = lipgloss.Color("#4c566a")
	colorHeader = lipgloss.Color("#81a1c1")
)

var (
	StyleCyan   = lipgloss.NewStyle().Foreground(colorCyan)
	StyleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

var colorEnabled = true

// SetColorEnabled toggles all styled output. When disabled, the render
// helpers pass text through unchanged.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// Dim renders s in the dim style.
func Dim(s string) string { return render(StyleDim, s) }

// Header renders s in the header style.
func Header(s string) string { return render(StyleHeader, s) }

// Changed renders s in the changed-marker style.
func Changed(s string) string { return render(StyleYellow, s) }

// Good renders s in the success style.
func Good(s string) string { return render(StyleGreen, s) }

// Warn renders s in the warning style.
func Warn(s string) string { return render(StyleRed, s) }
