// Package tui is the interactive terminal front end: a text input under a
// scrolling transcript, driven by bubbletea.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/zhouzirui/z-tavern/askwidget/internal/eventloop"
	"github.com/zhouzirui/z-tavern/askwidget/internal/widget"
)

// chromeHeight is the number of rows below the transcript: status line and input.
const chromeHeight = 2

// drainMsg tells Update that request completions are waiting on the loop.
type drainMsg struct{}

// fieldInput adapts the textinput to widget.Input.
type fieldInput struct {
	field *textinput.Model
}

func (f fieldInput) Value() string      { return f.field.Value() }
func (f fieldInput) SetValue(v string) { f.field.SetValue(v) }

// Model is the bubbletea model. It must be used through a pointer.
type Model struct {
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	styles     Styles
	transcript *transcriptView
	loop       *eventloop.Loop
	widget     *widget.Widget
	endpoint   string
}

// Options configures New.
type Options struct {
	Asker    widget.Asker
	Logger   *zap.Logger
	Endpoint string
	Styles   *Styles
}

// New builds the model and the widget behind it.
func New(opts Options) (*Model, error) {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	in := textinput.New()
	in.Placeholder = "Ask a question…"
	in.Prompt = "> "
	in.Focus()

	m := &Model{
		input:    in,
		viewport: viewport.New(80, 20),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:   styles,
		loop:     eventloop.New(),
		endpoint: opts.Endpoint,
	}
	m.transcript = &transcriptView{viewport: &m.viewport, styles: styles}

	w, err := widget.New(widget.Config{
		Input:     fieldInput{field: &m.input},
		Container: m.transcript,
		Asker:     opts.Asker,
		Schedule:  m.loop.Post,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create widget: %w", err)
	}
	m.widget = w
	return m, nil
}

// Widget exposes the chat widget, mainly for tests.
func (m *Model) Widget() *widget.Widget {
	return m.widget
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForCompletions())
}

func (m *Model) waitForCompletions() tea.Cmd {
	wake := m.loop.Wake()
	return func() tea.Msg {
		<-wake
		return drainMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.widget.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			m.widget.Submit()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case drainMsg:
		m.loop.Drain()
		return m, m.waitForCompletions()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
	m.transcript.ScrollToBottom()
}

// View implements tea.Model.
func (m *Model) View() string {
	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), m.statusLine(), m.input.View())
}

func (m *Model) statusLine() string {
	if n := m.widget.Pending(); n > 0 {
		noun := "replies"
		if n == 1 {
			noun = "reply"
		}
		return m.styles.Status.Render(fmt.Sprintf("%s waiting for %d %s", m.spinner.View(), n, noun))
	}
	help := "enter send • esc quit"
	if m.endpoint != "" {
		help = m.endpoint + " • " + help
	}
	return m.styles.Help.Render(help)
}
