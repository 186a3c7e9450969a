// ABOUTME: Environment variable editor for the wizard's fourth step
// ABOUTME: Scope tabs plus a cursor list with inline key/value editing

package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/draft"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
)

type envState int

const (
	envStateList envState = iota
	envStateKey
	envStateValue
)

// envEditor edits the draft's per-scope variable rows in place.
type envEditor struct {
	draft    *draft.Draft
	scopeIdx int
	cursor   int
	state    envState
	editRow  int
	keyInput textinput.Model
	valInput textinput.Model
	width    int
}

var (
	envSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#818CF8"))
	envNormalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E4E4E7"))
	envTabStyle      = lipgloss.NewStyle().Foreground(styles.Muted).Padding(0, 1)
	envActiveTab     = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Padding(0, 1).Underline(true)
)

func newEnvEditor(d *draft.Draft) *envEditor {
	ki := textinput.New()
	ki.Placeholder = "KEY"
	ki.CharLimit = 128
	ki.Width = 32

	vi := textinput.New()
	vi.Placeholder = "value"
	vi.CharLimit = 512
	vi.Width = 48

	return &envEditor{
		draft:    d,
		keyInput: ki,
		valInput: vi,
	}
}

func (e *envEditor) scope() string {
	return draft.Scopes[e.scopeIdx]
}

func (e *envEditor) rows() []draft.EnvVar {
	return e.draft.Env[e.scope()]
}

// List layout: rows, then [add variable], then [continue].
func (e *envEditor) itemCount() int {
	return len(e.rows()) + 2
}

// enter resets the editor when the wizard lands on the step.
func (e *envEditor) enter() {
	e.state = envStateList
	e.cursor = 0
	e.scopeIdx = 0
}

// Update handles one message. The boolean result reports that the user
// chose to continue to the next step.
func (e *envEditor) Update(msg tea.Msg) (tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	switch e.state {
	case envStateList:
		return e.updateList(key)
	case envStateKey:
		return e.updateKey(key), false
	case envStateValue:
		return e.updateValue(key), false
	}
	return nil, false
}

func (e *envEditor) updateList(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < e.itemCount()-1 {
			e.cursor++
		}
	case "tab", "right", "l":
		e.scopeIdx = (e.scopeIdx + 1) % len(draft.Scopes)
		e.clampCursor()
	case "shift+tab", "left", "h":
		e.scopeIdx = (e.scopeIdx + len(draft.Scopes) - 1) % len(draft.Scopes)
		e.clampCursor()
	case "x", "delete", "backspace":
		if e.cursor < len(e.rows()) {
			e.draft.RemoveEnvRow(e.scope(), e.cursor)
			e.clampCursor()
		}
	case "a":
		e.draft.AddEnvRow(e.scope())
		e.startEdit(len(e.rows()) - 1)
		return textinput.Blink, false
	case "enter":
		return e.selectItem()
	}
	return nil, false
}

func (e *envEditor) selectItem() (tea.Cmd, bool) {
	rowCount := len(e.rows())

	if e.cursor < rowCount {
		e.startEdit(e.cursor)
		return textinput.Blink, false
	}
	if e.cursor == rowCount {
		// [add variable]
		e.draft.AddEnvRow(e.scope())
		e.startEdit(rowCount)
		return textinput.Blink, false
	}
	// [continue]
	return nil, true
}

func (e *envEditor) startEdit(row int) {
	e.editRow = row
	e.state = envStateKey
	r := e.rows()[row]
	e.keyInput.SetValue(r.Key)
	e.valInput.SetValue(r.Value)
	e.keyInput.Focus()
}

func (e *envEditor) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.state = envStateList
		e.keyInput.Blur()
		return nil
	case "enter", "tab":
		e.keyInput.Blur()
		e.state = envStateValue
		e.valInput.Focus()
		return textinput.Blink
	}

	var cmd tea.Cmd
	e.keyInput, cmd = e.keyInput.Update(msg)
	return cmd
}

func (e *envEditor) updateValue(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.state = envStateList
		e.valInput.Blur()
		return nil
	case "enter":
		rows := e.draft.Env[e.scope()]
		rows[e.editRow] = draft.EnvVar{
			Key:   strings.TrimSpace(e.keyInput.Value()),
			Value: e.valInput.Value(),
		}
		e.valInput.Blur()
		e.state = envStateList
		e.cursor = e.editRow
		return nil
	}

	var cmd tea.Cmd
	e.valInput, cmd = e.valInput.Update(msg)
	return cmd
}

// truncateValue shortens an overlong value to maxLen runes with an
// ellipsis. Non-positive maxLen (width not yet known) leaves the value
// alone; tiny widths collapse to the bare ellipsis.
func truncateValue(value string, maxLen int) string {
	if maxLen <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= maxLen {
		return value
	}
	keep := maxLen - 3
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + "..."
}

func (e *envEditor) clampCursor() {
	if e.cursor > e.itemCount()-1 {
		e.cursor = e.itemCount() - 1
	}
}

// View renders the editor.
func (e *envEditor) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Step 4: Environment"))
	b.WriteString("\n\n")

	// Scope tabs
	var tabs []string
	for i, scope := range draft.Scopes {
		if i == e.scopeIdx {
			tabs = append(tabs, envActiveTab.Render(scope))
		} else {
			tabs = append(tabs, envTabStyle.Render(scope))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if e.state != envStateList {
		b.WriteString(e.viewEdit())
		return b.String()
	}

	rows := e.rows()
	if len(rows) == 0 {
		b.WriteString(styles.Help.Render("  (no variables)") + "\n")
	}
	for i, row := range rows {
		cursor := "  "
		style := envNormalStyle
		if i == e.cursor {
			cursor = "> "
			style = envSelectedStyle
		}
		label := row.Key
		if label == "" {
			label = "(unset)"
		}
		value := truncateValue(row.Value, e.width-24)
		b.WriteString(cursor + style.Render(label+" = "+value) + "\n")
	}

	b.WriteString("\n")
	for i, label := range []string{"[add variable]", "[continue to review]"} {
		idx := len(rows) + i
		cursor := "  "
		style := envNormalStyle
		if e.cursor == idx {
			cursor = "> "
			style = envSelectedStyle
		}
		b.WriteString(cursor + style.Render(label) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("enter edit • a add • x delete • tab switch scope"))

	return b.String()
}

func (e *envEditor) viewEdit() string {
	var b strings.Builder

	b.WriteString(styles.KeyStyle.Render("Key") + "\n")
	b.WriteString(e.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.KeyStyle.Render("Value") + "\n")
	b.WriteString(e.valInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Help.Render("enter next/save • esc back"))

	return b.String()
}
