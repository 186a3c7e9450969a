// ABOUTME: Custom huh form theme matching the web console colors
// ABOUTME: Shared by the login form and the deployment wizard

package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// FormTheme returns a huh theme matching the console's indigo/zinc look.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	indigo := lipgloss.Color("#6366F1")      // Indigo-500 - primary
	indigoLight := lipgloss.Color("#818CF8") // Indigo-400 - accents
	blue := lipgloss.Color("#3B82F6")        // Blue-500 - info
	zinc := lipgloss.Color("#A1A1AA")        // Zinc-400 - muted
	zincLight := lipgloss.Color("#E4E4E7")   // Zinc-200 - text
	red := lipgloss.Color("#F87171")         // Red-400 - errors
	slate := lipgloss.Color("#3F3F46")       // Zinc-700 - borders

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(indigo).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(zinc).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(indigo)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(indigoLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(zinc)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(indigo).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(zincLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(indigo).
		Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(indigo).
		MarginLeft(1).
		SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(indigo).
		MarginRight(1).
		SetString("←")

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(indigo)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(zinc)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(indigo)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(zincLight)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(zinc).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(zinc)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(zinc).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(zinc)

	return t
}
