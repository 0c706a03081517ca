package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/z-tavern/askwidget/internal/model/chat"
)

// Styles groups the lipgloss styles used by the chat view.
type Styles struct {
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	Text      lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		BotLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Text:      lipgloss.NewStyle(),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Label picks the label style for a sender.
func (s Styles) Label(sender chat.Sender) lipgloss.Style {
	if sender == chat.SenderUser {
		return s.UserLabel
	}
	return s.BotLabel
}
