// Package tui implements the interactive chat terminal interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driving"
)

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Styles for the chat transcript.
var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// answerMsg delivers the provider's response back into the update loop.
type answerMsg struct {
	answer domain.Answer
	err    error
}

// App is the chat TUI following the Elm architecture. It owns the
// conversation history; the core never persists turns.
type App struct {
	chat     driving.ChatService
	provider string
	useRAG   bool

	history []domain.Turn
	lines   []string
	pending string

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	waiting bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewApp creates a new chat application.
func NewApp(chat driving.ChatService, provider string, useRAG bool) *App {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		chat:     chat,
		provider: provider,
		useRAG:   useRAG,
		input:    input,
		spin:     spin,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("dochat"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Transcript fills everything above the input and status lines.
		a.viewport = viewport.New(msg.Width, max(msg.Height-3, 1))
		a.viewport.SetContent(strings.Join(a.lines, "\n"))
		a.input.Width = msg.Width - 4
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			if a.waiting {
				return a, nil
			}
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				return a, nil
			}
			a.input.Reset()
			a.appendLine(userStyle.Render("you: ") + text)
			a.pending = text
			a.waiting = true
			a.err = nil
			return a, tea.Batch(a.spin.Tick, a.send(text))
		}

		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case answerMsg:
		a.waiting = false
		if msg.err != nil {
			a.err = msg.err
			a.appendLine(errorStyle.Render(fmt.Sprintf("error: %v", msg.err)))
			return a, nil
		}

		// Only successful exchanges enter the history window.
		a.history = append(a.history,
			domain.Turn{Role: domain.RoleUser, Content: a.pending},
			domain.Turn{Role: domain.RoleAssistant, Content: msg.answer.Text},
		)
		a.pending = ""

		a.appendLine(assistantStyle.Render(msg.answer.Provider+": ") + msg.answer.Text)
		if len(msg.answer.Sources) > 0 {
			a.appendLine(sourceStyle.Render("sources: " + strings.Join(msg.answer.Sources, ", ")))
		}
		a.appendLine("")
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	status := statusStyle.Render(a.statusLine())
	if a.waiting {
		status = a.spin.View() + " thinking..."
	}

	return a.viewport.View() + "\n" + a.input.View() + "\n" + status
}

// statusLine describes the current session configuration.
func (a *App) statusLine() string {
	mode := "rag on"
	if !a.useRAG {
		mode = "rag off"
	}
	provider := a.provider
	if provider == "" {
		provider = "default"
	}
	return fmt.Sprintf("provider: %s | %s | esc to quit", provider, mode)
}

// send dispatches the message to the chat service off the update loop.
func (a *App) send(text string) tea.Cmd {
	history := make([]domain.Turn, len(a.history))
	copy(history, a.history)

	return func() tea.Msg {
		answer, err := a.chat.Answer(context.Background(), driving.AnswerRequest{
			Message:  text,
			History:  history,
			Provider: a.provider,
			UseRAG:   a.useRAG,
		})
		return answerMsg{answer: answer, err: err}
	}
}

// appendLine adds a transcript line and scrolls to the bottom.
func (a *App) appendLine(line string) {
	a.lines = append(a.lines, line)
	if a.ready {
		a.viewport.SetContent(strings.Join(a.lines, "\n"))
		a.viewport.GotoBottom()
	}
}

// History returns the accumulated conversation (for testing).
func (a *App) History() []domain.Turn {
	return a.history
}

// Waiting reports whether a request is in flight (for testing).
func (a *App) Waiting() bool {
	return a.waiting
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
