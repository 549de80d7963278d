package views

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"eterea/internal/domain"
	"eterea/internal/ports"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToDetailMsg struct {
	Bookmark *domain.Bookmark
	Query    string
}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

type errMsg struct {
	err error
}

type infoMsg struct {
	message string
}

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

func copyURLCmd(b *domain.Bookmark) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(b.TweetURL); err != nil {
			return errMsg{fmt.Errorf("failed to copy URL: %w", err)}
		}
		return infoMsg{"Copied " + b.TweetURL}
	}
}

func openURLCmd(opener ports.URLOpener, b *domain.Bookmark) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return errMsg{fmt.Errorf("no URL opener available")}
		}
		if err := opener.Open(b.TweetURL); err != nil {
			return errMsg{err}
		}
		return infoMsg{"Opened " + b.TweetURL}
	}
}
