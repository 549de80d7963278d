package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"eterea/internal/adapters/tui/views"
	"eterea/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewDetail
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store ports.BookmarkStore

	state   ViewState
	browser *views.BrowserModel
	detail  *views.DetailModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. opener may be nil, in which case
// opening a URL reports an error instead.
func NewApp(store ports.BookmarkStore, opener ports.URLOpener) *App {
	return &App{
		store:   store,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(store, opener),
		detail:  views.NewDetailModel(store, opener),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToDetailMsg:
		a.state = ViewDetail
		a.detail.SetBookmark(msg.Bookmark, msg.Query)
		return a, a.detail.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		prev := a.state
		a.state = ViewBrowser
		// the detail view may have changed the favorite flag
		if prev == ViewDetail {
			return a, a.browser.Reload()
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDetail:
		return a.detail.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
