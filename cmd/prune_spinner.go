package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pruneDoneMsg struct {
	result domain.PruneResult
	err    error
}

type pruneSpinnerModel struct {
	spinner spinner.Model
	label   string
	prune   tea.Cmd
	result  domain.PruneResult
	err     error
	done    bool
}

func newPruneSpinnerModel(label string, prune tea.Cmd) pruneSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return pruneSpinnerModel{
		spinner: s,
		label:   label,
		prune:   prune,
	}
}

func (m pruneSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.prune)
}

func (m pruneSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pruneDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m pruneSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runPruneSpinner runs prune in a background command while the spinner
// animates; the result comes back to the model as a message.
func runPruneSpinner(ctx context.Context, output io.Writer, label string, prune func(context.Context) (domain.PruneResult, error)) (domain.PruneResult, error) {
	pruneCmd := func() tea.Msg {
		result, err := prune(ctx)
		return pruneDoneMsg{result: result, err: err}
	}

	p := tea.NewProgram(
		newPruneSpinnerModel(label, pruneCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.PruneResult{}, err
	}

	final, ok := finalModel.(pruneSpinnerModel)
	if !ok {
		return domain.PruneResult{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return final.result, final.err
}
