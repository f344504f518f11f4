package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pyembed/py-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type replState int

const (
	stateLoading replState = iota
	statePrompt
)

type histEntry struct {
	code string
	err  error
}

type replModel struct {
	filename string
	rt       *runtime.Runtime
	input    textinput.Model
	history  []histEntry
	err      error
	state    replState
}

func newReplModel(filename string) *replModel {
	ti := textinput.New()
	ti.Prompt = ">>> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 0
	return &replModel{
		filename: filename,
		input:    ti,
		state:    stateLoading,
	}
}

type loadedMsg struct {
	err error
	rt  *runtime.Runtime
}

type execMsg struct {
	code string
	err  error
}

func (m *replModel) Init() tea.Cmd {
	return m.loadInterpreter
}

func (m *replModel) loadInterpreter() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	rt, err := runtime.New(ctx, data)
	if err != nil {
		return loadedMsg{err: err}
	}
	if err := rt.Start(false); err != nil {
		_ = rt.Close(ctx)
		return loadedMsg{err: err}
	}
	return loadedMsg{rt: rt}
}

func (m *replModel) execute(code string) tea.Cmd {
	return func() tea.Msg {
		return execMsg{code: code, err: m.rt.Execute(code)}
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rt = msg.rt
		m.state = statePrompt
		m.input.Focus()
		return m, textinput.Blink

	case execMsg:
		m.history = append(m.history, histEntry{code: msg.code, err: msg.err})
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.state != statePrompt {
				return m, nil
			}
			code := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if code == "" {
				return m, nil
			}
			if code == "exit" || code == "quit" {
				return m, tea.Quit
			}
			return m, m.execute(code)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("py-runtime repl"))
	b.WriteString("\n")

	if m.state == stateLoading {
		b.WriteString(helpStyle.Render("loading " + m.filename + "..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(helpStyle.Render(m.rt.Version() + " on " + m.rt.Platform()))
	b.WriteString("\n\n")

	for _, h := range m.history {
		b.WriteString(promptStyle.Render(">>> "))
		b.WriteString(h.code)
		b.WriteString("\n")
		if h.err != nil {
			b.WriteString(errorStyle.Render(h.err.Error()))
		} else {
			b.WriteString(outputStyle.Render("ok"))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: run · exit/ctrl+d: quit"))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(filename string) error {
	m := newReplModel(filename)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	if m.rt != nil {
		ctx := context.Background()
		if m.rt.Initialized() {
			_ = m.rt.Stop()
		}
		_ = m.rt.Close(ctx)
	}
	if m.err != nil {
		return fmt.Errorf("load interpreter: %w", m.err)
	}
	return nil
}
