// Package chat implements a terminal chat answering questions about the
// fields of a flattened schema.
package chat

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/midbel/fpmlchat/lookup"
)

const (
	Title       = "FPML Chatbot"
	Placeholder = "Search for an XSD element..."

	DefaultTyping = 15 * time.Millisecond
	DefaultLimit  = 5

	defaultWidth  = 80
	defaultHeight = 24
)

type Sender int

const (
	User Sender = iota
	Bot
)

type Message struct {
	Sender Sender
	Text   string
}

// typeMsg reveals the next rune of the answer being typed. Messages from an
// answer that was flushed are ignored.
type typeMsg struct {
	seq int
}

type Option func(*Model)

// WithTyping sets the delay between two runes of an answer. A zero delay
// shows answers at once.
func WithTyping(delay time.Duration) Option {
	return func(m *Model) {
		if delay >= 0 {
			m.typing = delay
		}
	}
}

// WithLimit sets the number of suggestions shown under the input.
func WithLimit(limit int) Option {
	return func(m *Model) {
		if limit >= 0 {
			m.limit = limit
		}
	}
}

type Model struct {
	index  *lookup.Index
	typing time.Duration
	limit  int

	input    textinput.Model
	history  viewport.Model
	messages []Message

	suggestions []lookup.Entry
	selected    int

	pending []rune
	seq     int

	width  int
	height int
}

func New(ix *lookup.Index, opts ...Option) Model {
	m := Model{
		index:    ix,
		typing:   DefaultTyping,
		limit:    DefaultLimit,
		selected: -1,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	for _, o := range opts {
		o(&m)
	}
	m.input = textinput.New()
	m.input.Placeholder = Placeholder
	m.input.CharLimit = 128
	m.input.Focus()
	m.history = viewport.New()
	m.resize()
	return m
}

// Run starts the chat on the terminal and returns when the user quits.
func Run(ix *lookup.Index, opts ...Option) error {
	_, err := tea.NewProgram(New(ix, opts...)).Run()
	return err
}

func (m Model) Messages() []Message {
	return m.messages
}

func (m Model) Suggestions() []lookup.Entry {
	return m.suggestions
}

func (m Model) Typing() bool {
	return len(m.pending) > 0
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case typeMsg:
		return m.reveal(msg)
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "tab":
			m.complete()
			return m, nil
		case "down":
			m.move(1)
			return m, nil
		case "up":
			m.move(-1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.suggest()
	}
	return m, cmd
}

func (m Model) View() tea.View {
	var body strings.Builder
	body.WriteString(titleStyle.Render(Title))
	body.WriteString("\n")
	body.WriteString(m.history.View())
	body.WriteString("\n")
	for i, e := range m.suggestions {
		style := suggestStyle
		if i == m.selected {
			style = selectStyle
		}
		body.WriteString(style.Render(e.Label))
		body.WriteString(" ")
		body.WriteString(pathStyle.Render(e.Path))
		body.WriteString("\n")
	}
	body.WriteString(inputStyle.Width(m.width).Render(m.input.View()))
	body.WriteString("\n")
	body.WriteString(helpStyle.Render("enter: send • tab: complete • ↑/↓: select • esc: quit"))

	v := tea.NewView(body.String())
	v.AltScreen = true
	v.WindowTitle = Title
	return v
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if m.selected >= 0 {
		question = m.suggestions[m.selected].Label
	}
	if question == "" {
		return m, nil
	}
	m.flush()
	m.messages = append(m.messages, Message{Sender: User, Text: question})

	answer := Reply(m.index, question)
	m.input.Reset()
	m.suggestions = nil
	m.selected = -1

	if m.typing == 0 {
		m.messages = append(m.messages, Message{Sender: Bot, Text: answer})
		m.render()
		return m, nil
	}
	m.messages = append(m.messages, Message{Sender: Bot})
	m.pending = []rune(answer)
	m.seq++
	m.render()
	return m, m.tick()
}

func (m Model) reveal(msg typeMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || len(m.pending) == 0 {
		return m, nil
	}
	last := &m.messages[len(m.messages)-1]
	last.Text += string(m.pending[0])
	m.pending = m.pending[1:]
	m.render()
	if len(m.pending) == 0 {
		return m, nil
	}
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.typing, func(_ time.Time) tea.Msg {
		return typeMsg{seq: seq}
	})
}

// flush shows the rest of the answer being typed.
func (m *Model) flush() {
	if len(m.pending) == 0 {
		return
	}
	last := &m.messages[len(m.messages)-1]
	last.Text += string(m.pending)
	m.pending = nil
	m.seq++
}

func (m *Model) suggest() {
	m.selected = -1
	if m.limit == 0 {
		m.suggestions = nil
		return
	}
	m.suggestions = m.index.Suggest(m.input.Value(), m.limit)
}

func (m *Model) complete() {
	if len(m.suggestions) == 0 {
		return
	}
	ix := m.selected
	if ix < 0 {
		ix = 0
	}
	m.input.SetValue(m.suggestions[ix].Label)
	m.input.CursorEnd()
	m.suggest()
}

func (m *Model) move(dir int) {
	if len(m.suggestions) == 0 {
		return
	}
	m.selected += dir
	if m.selected < 0 {
		m.selected = len(m.suggestions) - 1
	} else if m.selected >= len(m.suggestions) {
		m.selected = 0
	}
}

func (m *Model) resize() {
	m.input.SetWidth(max(m.width-6, 10))
	m.history.SetWidth(m.width)
	m.history.SetHeight(max(m.height-6-m.limit, 3))
	m.render()
}

func (m *Model) render() {
	width := max(m.width*4/5, 20)
	var list []string
	for _, msg := range m.messages {
		if msg.Sender == User {
			list = append(list, userStyle.Render(msg.Text))
			continue
		}
		if msg.Text == "" {
			continue
		}
		list = append(list, botStyle.Width(width).Render(msg.Text))
	}
	m.history.SetContent(lipgloss.JoinVertical(lipgloss.Left, list...))
	m.history.GotoBottom()
}
