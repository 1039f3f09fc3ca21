package cli

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/aardalath/arestools/internal/models"
	"github.com/aardalath/arestools/internal/service"
	"github.com/charmbracelet/lipgloss"
)

const pollInterval = time.Second

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// tickMsg triggers polling the run state
type tickMsg time.Time

// runDoneMsg carries the finished run's report
type runDoneMsg struct {
	report *models.Report
	err    error
}

// progressModel is the bubbletea model for import run progress.
type progressModel struct {
	imp      *service.Importer
	cancel   context.CancelFunc
	done     <-chan runDoneMsg
	snap     service.RunState
	progress progress.Model
	theme    Theme
	finished bool
	report   *models.Report
	err      error
}

// newProgressModel creates a new progress model.
func newProgressModel(imp *service.Importer, cancel context.CancelFunc, done <-chan runDoneMsg) progressModel {
	// Create progress bar with color blend
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		imp:      imp,
		cancel:   cancel,
		done:     done,
		snap:     imp.Progress().Snapshot(),
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial commands (start polling, watch for completion).
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForDone(m.done),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Stop the run; the final state arrives via runDoneMsg.
			m.cancel()
			return m, nil
		}

	case tickMsg:
		m.snap = m.imp.Progress().Snapshot()
		return m, tickCmd()

	case runDoneMsg:
		m.finished = true
		m.report = msg.report
		m.err = msg.err
		m.snap = m.imp.Progress().Snapshot()
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m progressModel) renderContent() string {
	if m.finished {
		return m.finalView()
	}

	if m.snap.Total == 0 {
		return "Preparing import run...\n"
	}

	// Calculate progress percentage
	pct := float64(m.snap.Progress) / float64(m.snap.Total)

	// Status line with color
	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.snap.Phase))

	// Progress bar with counts
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d files", m.snap.Progress, m.snap.Total)

	hint := m.theme.hintStyle().Render("Press Ctrl+C to abort")
	if m.snap.Current != "" {
		hint = m.theme.hintStyle().Render(fmt.Sprintf("importing %s", m.snap.Current))
	}

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, hint)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Import aborted: %s\n", m.err))
	}

	if m.report == nil {
		return ""
	}

	var output string
	output += m.theme.completedStyle().Render("✓ Completed") + "\n\n"
	output += fmt.Sprintf("  Files imported:  %d of %d\n", m.report.Succeeded, m.report.Total)
	if m.report.Failed > 0 {
		output += m.theme.errorStyle().Render(fmt.Sprintf("  Files failed:    %d", m.report.Failed)) + "\n"
	}
	output += fmt.Sprintf("  Elapsed:         %s\n", m.report.Elapsed.Round(time.Millisecond))
	return output
}

// waitForDone delivers the run result once the engine goroutine finishes.
func waitForDone(done <-chan runDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

// tickCmd returns a command that sends a tick after the poll interval.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// RunImportProgress runs the import with an interactive progress display.
// Ctrl+C cancels the run; the engine's result is returned either way.
func RunImportProgress(ctx context.Context, imp *service.Importer) (*models.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan runDoneMsg, 1)
	go func() {
		report, err := imp.Run(ctx)
		done <- runDoneMsg{report: report, err: err}
	}()

	model := newProgressModel(imp, cancel, done)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(progressModel); ok && m.finished {
		return m.report, m.err
	}

	// The UI ended before the engine did; wait for its result.
	res := <-done
	return res.report, res.err
}
