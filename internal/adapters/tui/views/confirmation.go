package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"eterea/internal/adapters/tui/styles"
	"eterea/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel holds a pending destructive action on one bookmark
type ConfirmationModel struct {
	Target *domain.Bookmark
	Keys   ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetTarget sets the bookmark awaiting confirmation; nil clears it
func (m *ConfirmationModel) SetTarget(b *domain.Bookmark) {
	m.Target = b
}

// Active reports whether a confirmation is pending
func (m *ConfirmationModel) Active() bool {
	return m.Target != nil
}

// HandleKeyMsg processes key messages for confirmation prompts.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders the bookmark an action applies to
func RenderTargetInfo(b *domain.Bookmark, action string) string {
	if b == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.InputLabel.Render(action + " bookmark:"))
	sb.WriteString("\n  ")
	sb.WriteString(b.AuthorHandle)
	sb.WriteString(" ")
	sb.WriteString(b.TweetedAt.Format(time.DateOnly))
	sb.WriteString("\n  ")
	sb.WriteString(truncate(oneLine(b.Content), 72))
	return sb.String()
}
