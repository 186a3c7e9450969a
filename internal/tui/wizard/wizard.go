// ABOUTME: Five-step deployment wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/enochcodes/orchestra/cli/internal/client"
	"github.com/enochcodes/orchestra/cli/internal/draft"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
)

// CompleteMsg is sent when the wizard finishes with a deployable request.
type CompleteMsg struct {
	Request *client.CreateApplicationRequest
}

// CancelledMsg is sent when the wizard is cancelled.
type CancelledMsg struct{}

// Wizard walks a deployment draft through source, stack, config,
// environment and review before handing the assembled request back.
type Wizard struct {
	draft    *draft.Draft
	appTypes []client.AppType
	clusters []client.Cluster

	form *huh.Form
	env  *envEditor
	step int
	spin spinner.Model

	width        int
	errMsg       string
	submitting   bool
	reviewChoice bool

	// Form field values (strings for huh)
	frameworkID string
	portVal     string
}

// New creates a wizard over a fresh draft. Frameworks and clusters come
// pre-loaded; the wizard itself performs no I/O.
func New(appTypes []client.AppType, clusters []client.Cluster) *Wizard {
	w := &Wizard{
		draft:    draft.New(),
		appTypes: appTypes,
		clusters: clusters,
		step:     draft.StepSource,
	}
	w.env = newEnvEditor(w.draft)
	w.form = w.createSourceForm()
	w.spin = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return w
}

func (w *Wizard) createSourceForm() *huh.Form {
	sourceOptions := []huh.Option[draft.SourceKind]{
		huh.NewOption("Git repository", draft.SourceGit),
		huh.NewOption("Docker image", draft.SourceDockerImage),
		huh.NewOption("Local path", draft.SourceManualPath),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Placeholder("my-service").
				CharLimit(63).
				Value(&w.draft.Name).
				Validate(validateRequired("application name is required")),
			huh.NewSelect[draft.SourceKind]().
				Title("Deploy from").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(sourceOptions...).
				Value(&w.draft.Source),
		).Title("Step 1: Source").
			Description("Where should Orchestra pull your application from?"),
		huh.NewGroup(
			huh.NewInput().
				Title("Repository URL").
				Placeholder("https://github.com/acme/my-service.git").
				CharLimit(256).
				Value(&w.draft.RepoURL).
				Validate(validateRequired("git repository URL is required")),
			huh.NewInput().
				Title("Branch").
				Placeholder("main").
				CharLimit(128).
				Value(&w.draft.Branch),
		).WithHideFunc(func() bool { return w.draft.Source != draft.SourceGit }),
		huh.NewGroup(
			huh.NewInput().
				Title("Image reference").
				Placeholder("ghcr.io/acme/my-service:latest").
				CharLimit(256).
				Value(&w.draft.DockerImage).
				Validate(validateRequired("docker image is required")),
		).WithHideFunc(func() bool { return w.draft.Source != draft.SourceDockerImage }),
		huh.NewGroup(
			huh.NewInput().
				Title("Source path").
				Placeholder("/srv/builds/my-service").
				CharLimit(256).
				Value(&w.draft.ManualPath),
		).WithHideFunc(func() bool { return w.draft.Source != draft.SourceManualPath }),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStackForm() *huh.Form {
	if w.draft.Source == draft.SourceDockerImage {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Pre-built image").
					Description("The image is already built, so there is no stack to pick.").
					Affirmative("Continue").
					Negative(""),
			).Title("Step 2: Stack"),
		).WithTheme(styles.FormTheme())
	}

	var options []huh.Option[string]
	for _, at := range w.appTypes {
		for _, fw := range at.Frameworks {
			label := fw.Name
			if len(w.appTypes) > 1 {
				label = fmt.Sprintf("%s (%s)", fw.Name, at.Name)
			}
			options = append(options, huh.NewOption(label, fw.ID))
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Framework").
				Description("Sets the default build and start commands").
				Options(options...).
				Value(&w.frameworkID),
		).Title("Step 2: Stack").
			Description("Which framework does your application use?"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createConfigForm() *huh.Form {
	clusterOptions := []huh.Option[uint]{
		huh.NewOption("Auto (first available)", uint(0)),
	}
	for _, c := range w.clusters {
		clusterOptions = append(clusterOptions, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Build command").
				Placeholder("npm run build").
				CharLimit(256).
				Value(&w.draft.BuildCmd),
			huh.NewInput().
				Title("Start command").
				Placeholder("npm start").
				CharLimit(256).
				Value(&w.draft.StartCmd),
		).Title("Step 3: Config").
			Description("Override the framework defaults if needed").
			WithHideFunc(func() bool { return w.draft.Source == draft.SourceDockerImage }),
		huh.NewGroup(
			huh.NewSelect[uint]().
				Title("Target cluster").
				Options(clusterOptions...).
				Value(&w.draft.ClusterID),
			huh.NewInput().
				Title("Port").
				Placeholder("8080").
				CharLimit(5).
				Value(&w.portVal).
				Validate(validatePort),
			huh.NewInput().
				Title("Domain").
				Placeholder("my-service.example.com").
				CharLimit(256).
				Value(&w.draft.Domain),
		).Title("Step 3: Config").
			Description("Where and how the application is exposed"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createReviewForm() *huh.Form {
	w.reviewChoice = true
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Deploy this application?").
				Affirmative("Deploy").
				Negative("Back").
				Value(&w.reviewChoice),
		),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.env.width = msg.Width
		if w.step != draft.StepEnvironment {
			form, cmd := w.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				w.form = f
			}
			return w, cmd
		}
		return w, nil

	case spinner.TickMsg:
		if !w.submitting {
			return w, nil
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd

	case tea.KeyMsg:
		if w.submitting {
			return w, nil
		}
		if msg.String() == "esc" {
			// The env editor consumes esc while a row is being edited.
			if w.step == draft.StepEnvironment && w.env.state != envStateList {
				break
			}
			w.errMsg = ""
			if w.step > draft.StepSource {
				return w.gotoStep(w.step - 1)
			}
			return w, func() tea.Msg { return CancelledMsg{} }
		}
		w.errMsg = ""
	}

	if w.step == draft.StepEnvironment {
		cmd, done := w.env.Update(msg)
		if done {
			return w.advanceStep()
		}
		return w, cmd
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	// The framework pick lives in a form-bound field; sync it into the
	// draft before the step gate inspects it.
	if w.step == draft.StepStack {
		if fw, ok := w.findFramework(w.frameworkID); ok {
			w.draft.ApplyFramework(fw)
		}
	}

	if err := w.draft.CanLeave(w.step); err != nil {
		w.errMsg = err.Error()
		return w.gotoStep(w.step)
	}

	switch w.step {
	case draft.StepSource:
		return w.gotoStep(draft.StepStack)

	case draft.StepStack:
		return w.gotoStep(draft.StepConfig)

	case draft.StepConfig:
		w.draft.Port, _ = strconv.Atoi(w.portVal)
		return w.gotoStep(draft.StepEnvironment)

	case draft.StepEnvironment:
		return w.gotoStep(draft.StepReview)

	case draft.StepReview:
		if !w.confirmed() {
			return w.gotoStep(draft.StepEnvironment)
		}
		req, err := w.draft.BuildPayload(w.clusters)
		if err != nil {
			w.errMsg = err.Error()
			return w.gotoStep(draft.StepReview)
		}
		return w, func() tea.Msg {
			return CompleteMsg{Request: req}
		}
	}

	return w, nil
}

func (w *Wizard) gotoStep(step int) (tea.Model, tea.Cmd) {
	w.step = step
	switch step {
	case draft.StepSource:
		w.form = w.createSourceForm()
	case draft.StepStack:
		// A validation failure on step two means the framework pick was
		// cleared; re-select.
		w.form = w.createStackForm()
	case draft.StepConfig:
		w.form = w.createConfigForm()
	case draft.StepEnvironment:
		w.env.enter()
		return w, nil
	case draft.StepReview:
		w.form = w.createReviewForm()
	}
	return w, w.form.Init()
}

func (w *Wizard) findFramework(id string) (client.Framework, bool) {
	for _, at := range w.appTypes {
		for _, fw := range at.Frameworks {
			if fw.ID == id {
				return fw, true
			}
		}
	}
	return client.Framework{}, false
}

// confirmed reports whether the review confirm ended on Deploy.
func (w *Wizard) confirmed() bool {
	return w.reviewChoice
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
	w.env.width = width
}

// SetSubmitting marks the wizard as waiting on the deploy request and
// starts the spinner while one is outstanding.
func (w *Wizard) SetSubmitting(v bool) tea.Cmd {
	w.submitting = v
	if v {
		return w.spin.Tick
	}
	return nil
}

// SetError surfaces a submit failure and rearms the review step.
func (w *Wizard) SetError(msg string) tea.Cmd {
	w.errMsg = msg
	w.submitting = false
	w.step = draft.StepReview
	w.form = w.createReviewForm()
	return w.form.Init()
}

// Draft exposes the underlying draft, mainly for tests.
func (w *Wizard) Draft() *draft.Draft {
	return w.draft
}

// Step returns the current step number.
func (w *Wizard) Step() int {
	return w.step
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.step == draft.StepReview {
		sb.WriteString(w.renderSummary())
		sb.WriteString("\n\n")
	}

	if w.step == draft.StepEnvironment {
		sb.WriteString(w.env.View())
	} else {
		sb.WriteString(w.form.View())
	}

	if w.submitting {
		sb.WriteString("\n")
		sb.WriteString(w.spin.View() + styles.Subtitle.Render("Deploying..."))
	}
	if w.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render("Error: " + w.errMsg))
	}

	return sb.String()
}

// renderSummary renders the review panel with everything about to ship.
func (w *Wizard) renderSummary() string {
	d := w.draft
	key := styles.KeyStyle
	val := styles.ValueStyle

	line := func(k, v string) string {
		return fmt.Sprintf("  %s %s", key.Render(k+":"), val.Render(v))
	}

	var source string
	switch d.Source {
	case draft.SourceGit:
		source = fmt.Sprintf("%s %s @ %s", icons.Git, d.RepoURL, d.Branch)
	case draft.SourceDockerImage:
		source = fmt.Sprintf("%s %s", icons.Docker, d.DockerImage)
	case draft.SourceManualPath:
		source = fmt.Sprintf("%s %s", icons.Folder, d.ManualPath)
	}

	stack := "prebuilt image"
	if d.Source != draft.SourceDockerImage {
		stack = d.FrameworkID
	}

	cluster := "first available"
	for _, c := range w.clusters {
		if c.ID == d.ClusterID {
			cluster = c.Name
		}
	}

	lines := []string{
		styles.Title.Render("Review"),
		line("Name", d.Name),
		line("Source", source),
		line("Stack", stack),
	}
	if d.BuildCmd != "" {
		lines = append(lines, line("Build", d.BuildCmd))
	}
	if d.StartCmd != "" {
		lines = append(lines, line("Start", d.StartCmd))
	}
	if d.Port != 0 {
		lines = append(lines, line("Port", strconv.Itoa(d.Port)))
	}
	if d.Domain != "" {
		lines = append(lines, line("Domain", d.Domain))
	}
	lines = append(lines, line("Cluster", cluster))
	for _, scope := range draft.Scopes {
		vars := draft.CollapseEnv(d.Env[scope])
		lines = append(lines, line(scope, fmt.Sprintf("%d variable(s)", len(vars))))
	}

	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 72 {
		width = 72
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range draft.StepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Accent).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "   ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / draft.StepCount
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	styledTitle := titleStyle.Render("New Deployment")
	titleWidth := lipgloss.Width("New Deployment")

	// Top border: "┌─ " + title + " " + fill + "┐"
	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	// Steps line: "│ " + content + padding + " │" = 4 chars overhead
	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := max(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + progressBar + " │"

	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func validateRequired(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func validatePort(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 65535 {
		return fmt.Errorf("must be a port between 1 and 65535")
	}
	return nil
}
