package chat_test

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/fpmlchat/chat"
	"github.com/midbel/fpmlchat/lookup"
	"github.com/midbel/fpmlchat/xsd"
)

func testIndex() *lookup.Index {
	list := []xsd.Element{
		{
			Name:          "trade",
			Type:          "Trade",
			Mandatory:     true,
			Documentation: "The full details of a trade.",
			Children: []xsd.Element{
				{
					Name:          "tradeId",
					Type:          "Unknown",
					Documentation: xsd.DefaultDocumentation,
				},
				{
					Name:          "tradeDate",
					Type:          "IdentifiedDate",
					Mandatory:     true,
					MaxOccurs:     "unbounded",
					Documentation: "The trade date.",
				},
			},
		},
	}
	return lookup.New(list)
}

func TestFormat(t *testing.T) {
	ix := testIndex()

	e, err := ix.Lookup("tradeId")
	require.NoError(t, err)
	want := "Field Name: tradeId\n\n" +
		"Data Type: Unknown\n\n" +
		"Required: No, this field is optional.\n\n" +
		"Occurrences:\n- Minimum: 0\n- Maximum: 1\n\n" +
		"Explanation:\nNo documentation available"
	assert.Equal(t, want, chat.Format(e))

	e, err = ix.Lookup("tradeDate")
	require.NoError(t, err)
	got := chat.Format(e)
	assert.Contains(t, got, "Required: Yes, this field must be provided.")
	assert.Contains(t, got, "- Minimum: 1\n- Maximum: unbounded")
}

func TestReply(t *testing.T) {
	ix := testIndex()
	assert.True(t, strings.HasPrefix(chat.Reply(ix, "trade id"), "Field Name: tradeId"))
	assert.Equal(t, chat.NotFound, chat.Reply(ix, "xyzzy_nonexistent"))
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return m
}

func TestSubmitInstant(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(0))

	m = typeText(m, "tradeDate")
	m, cmd := m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)

	msgs := m.(chat.Model).Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.User, msgs[0].Sender)
	assert.Equal(t, "tradeDate", msgs[0].Text)
	assert.Equal(t, chat.Bot, msgs[1].Sender)
	assert.True(t, strings.HasPrefix(msgs[1].Text, "Field Name: tradeDate"))
}

func TestSubmitBlank(t *testing.T) {
	var m tea.Model = chat.New(testIndex())

	m = typeText(m, "   ")
	m, cmd := m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, m.(chat.Model).Messages())
}

func TestSubmitNotFound(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(0))

	m = typeText(m, "xyzzy_nonexistent")
	m, _ = m.Update(press(tea.KeyEnter))

	msgs := m.(chat.Model).Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.NotFound, msgs[1].Text)
}

func TestTypingEffect(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(time.Microsecond))

	m = typeText(m, "tradeId")
	m, cmd := m.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)

	cm := m.(chat.Model)
	assert.True(t, cm.Typing())
	assert.Empty(t, cm.Messages()[1].Text)

	m, cmd = m.Update(cmd())
	assert.Equal(t, "F", m.(chat.Model).Messages()[1].Text)

	for cmd != nil {
		m, cmd = m.Update(cmd())
	}
	cm = m.(chat.Model)
	assert.False(t, cm.Typing())

	e, err := testIndex().Lookup("tradeId")
	require.NoError(t, err)
	assert.Equal(t, chat.Format(e), cm.Messages()[1].Text)
}

func TestTypingFlush(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(time.Microsecond))

	m = typeText(m, "tradeId")
	m, first := m.Update(press(tea.KeyEnter))
	require.NotNil(t, first)

	m = typeText(m, "xyzzy_nonexistent")
	m, _ = m.Update(press(tea.KeyEnter))

	msgs := m.(chat.Model).Messages()
	require.Len(t, msgs, 4)
	assert.True(t, strings.HasPrefix(msgs[1].Text, "Field Name: tradeId"))
	assert.True(t, strings.HasSuffix(msgs[1].Text, xsd.DefaultDocumentation))

	m, cmd := m.Update(first())
	assert.Nil(t, cmd)
	assert.Empty(t, m.(chat.Model).Messages()[3].Text)
}

func TestSuggestions(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(0))

	m = typeText(m, "trade")
	var labels []string
	for _, e := range m.(chat.Model).Suggestions() {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"trade", "tradeId", "tradeDate"}, labels)

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyEnter))

	msgs := m.(chat.Model).Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "tradeId", msgs[0].Text)
	assert.Empty(t, m.(chat.Model).Suggestions())
}

func TestComplete(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(0))

	m = typeText(m, "tradeD")
	m, _ = m.Update(press(tea.KeyTab))
	m, _ = m.Update(press(tea.KeyEnter))

	msgs := m.(chat.Model).Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "tradeDate", msgs[0].Text)
}

func TestQuit(t *testing.T) {
	m := chat.New(testIndex())

	_, cmd := m.Update(press(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	var m tea.Model = chat.New(testIndex(), chat.WithTyping(0))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = typeText(m, "trade")

	v := m.(chat.Model).View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, chat.Title, v.WindowTitle)
}
