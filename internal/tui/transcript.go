package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/zhouzirui/z-tavern/askwidget/internal/widget"
)

// transcriptView is the widget's container: a viewport holding every entry.
type transcriptView struct {
	viewport *viewport.Model
	styles   Styles
	entries  []widget.Entry
}

func (v *transcriptView) AppendEntry(e widget.Entry) {
	v.entries = append(v.entries, e)
}

func (v *transcriptView) ScrollToBottom() {
	v.refresh()
	v.viewport.GotoBottom()
}

// refresh re-renders all entries at the current viewport width.
func (v *transcriptView) refresh() {
	width := v.viewport.Width
	var b strings.Builder
	for i, e := range v.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(v.styles.Label(e.Message.Sender).Render(e.Label))
		b.WriteString("\n")
		text := v.styles.Text
		if width > 0 {
			text = text.Width(width)
		}
		b.WriteString(text.Render(e.Message.Text))
	}
	v.viewport.SetContent(b.String())
}
