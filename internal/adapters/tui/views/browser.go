package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eterea/internal/adapters/tui/styles"
	"eterea/internal/application/commands"
	"eterea/internal/domain"
	"eterea/internal/ports"
)

const defaultPageSize = 20

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Enter     key.Binding
	Search    key.Binding
	Favorite  key.Binding
	Favorites key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Open      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	Favorites: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "favorites only"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy URL"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SearchKeyMap defines key bindings while the search input has focus
type SearchKeyMap struct {
	Apply  key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

// BrowserModel pages through stored bookmarks, optionally narrowed by a
// full-text query and the favorites flag. Only the visible page is loaded.
type BrowserModel struct {
	ViewState
	store  ports.BookmarkStore
	opener ports.URLOpener

	input         textinput.Model
	searching     bool
	query         string
	favoritesOnly bool

	pager   *Paginator
	items   []*domain.Bookmark
	loaded  bool
	confirm ConfirmationModel
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(store ports.BookmarkStore, opener ports.URLOpener) *BrowserModel {
	input := textinput.New()
	input.Placeholder = "Search bookmarks..."
	input.Prompt = "/ "
	input.Cursor.SetMode(cursor.CursorStatic)

	return &BrowserModel{
		store:   store,
		opener:  opener,
		input:   input,
		pager:   NewPaginator(defaultPageSize),
		confirm: NewConfirmationModel(),
	}
}

type pageLoadedMsg struct {
	page *domain.Page
}

type favoriteChangedMsg struct {
	result *commands.FavoriteResult
}

type deletedMsg struct {
	message string
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.load(0)
}

func (m *BrowserModel) filter(offset int) domain.SearchFilter {
	return domain.SearchFilter{
		Query:         m.query,
		FavoritesOnly: m.favoritesOnly,
		Offset:        offset,
		Limit:         m.pager.PageSize(),
	}
}

func (m *BrowserModel) load(offset int) tea.Cmd {
	f := m.filter(offset)
	return func() tea.Msg {
		page, err := commands.NewFilterCommand(m.store, f).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return pageLoadedMsg{page}
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case pageLoadedMsg:
		m.items = msg.page.Items
		m.loaded = true
		m.pager.SetTotal(msg.page.Total)
		// A shrunken result set can leave the window past its end
		if m.pager.PageOffset() != msg.page.Offset && m.pager.Total() > 0 {
			return m, m.load(m.pager.PageOffset())
		}
		return m, nil

	case favoriteChangedMsg:
		m.SetMessage(msg.result.Message, false)
		for _, b := range m.items {
			if b.ID == msg.result.ID {
				b.IsFavorite = msg.result.IsFavorite
			}
		}
		if m.favoritesOnly && !msg.result.IsFavorite {
			return m, m.load(m.pager.PageOffset())
		}
		return m, nil

	case deletedMsg:
		m.SetMessage(msg.message, false)
		m.pager.RemoveAtCursor()
		return m, m.load(m.pager.PageOffset())

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case infoMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active() {
			return m, m.updateConfirm(msg)
		}
		if m.searching {
			return m, m.updateSearch(msg)
		}
		m.ClearMessage()
		return m, m.updateKeys(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	target := m.confirm.Target
	_, cmd := m.confirm.HandleKeyMsg(msg,
		func() tea.Msg {
			res, err := commands.NewDeleteCommand(m.store, target.ID).Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return deletedMsg{res.Message}
		},
		func() tea.Msg { return infoMsg{"Delete cancelled"} },
	)
	if cmd != nil {
		m.confirm.SetTarget(nil)
	}
	return cmd
}

func (m *BrowserModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SearchKeys.Apply):
		m.searching = false
		m.input.Blur()
		return m.applyQuery(strings.TrimSpace(m.input.Value()))

	case key.Matches(msg, SearchKeys.Cancel):
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		return m.applyQuery("")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *BrowserModel) applyQuery(query string) tea.Cmd {
	if query == m.query && m.loaded {
		return nil
	}
	m.query = query
	m.pager.Reset()
	return m.load(0)
}

func (m *BrowserModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		return m.moveCursor(m.pager.CursorUp)

	case key.Matches(msg, BrowserKeys.Down):
		return m.moveCursor(m.pager.CursorDown)

	case key.Matches(msg, BrowserKeys.NextPage):
		return m.moveCursor(m.pager.NextPage)

	case key.Matches(msg, BrowserKeys.PrevPage):
		return m.moveCursor(m.pager.PrevPage)

	case key.Matches(msg, BrowserKeys.Search):
		m.searching = true
		m.input.SetValue(m.query)
		return m.input.Focus()

	case key.Matches(msg, BrowserKeys.Favorites):
		m.favoritesOnly = !m.favoritesOnly
		m.pager.Reset()
		return m.load(0)

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	b := m.Selected()
	if b == nil {
		return nil
	}

	switch {
	case key.Matches(msg, BrowserKeys.Enter):
		query := m.query
		return func() tea.Msg { return SwitchToDetailMsg{Bookmark: b, Query: query} }

	case key.Matches(msg, BrowserKeys.Favorite):
		return toggleFavoriteCmd(m.store, b)

	case key.Matches(msg, BrowserKeys.Delete):
		m.confirm.SetTarget(b)
		return nil

	case key.Matches(msg, BrowserKeys.Copy):
		return copyURLCmd(b)

	case key.Matches(msg, BrowserKeys.Open):
		return openURLCmd(m.opener, b)
	}
	return nil
}

// moveCursor applies a paginator move and loads the page it lands on
func (m *BrowserModel) moveCursor(move func() bool) tea.Cmd {
	before := m.pager.PageOffset()
	if !move() || m.pager.PageOffset() == before {
		return nil
	}
	return m.load(m.pager.PageOffset())
}

func toggleFavoriteCmd(store ports.BookmarkStore, b *domain.Bookmark) tea.Cmd {
	return func() tea.Msg {
		res, err := commands.NewToggleFavoriteCommand(store, b.ID).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return favoriteChangedMsg{res}
	}
}

// Selected returns the bookmark under the cursor
func (m *BrowserModel) Selected() *domain.Bookmark {
	i := m.pager.CursorInPage()
	if i >= 0 && i < len(m.items) {
		return m.items[i]
	}
	return nil
}

// Query returns the applied search query
func (m *BrowserModel) Query() string {
	return m.query
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		return "Loading..."
	}

	v := NewViewBuilder()
	v.Raw(RenderTitle("Eterea"))
	v.Raw("\n")
	v.Raw(RenderSubtitle(m.subtitle()))
	v.Raw("\n\n")

	if m.searching || m.query != "" {
		v.Line(m.input.View())
		v.BlankLine()
	}

	if len(m.items) == 0 {
		v.Muted("No bookmarks")
	}
	for i, b := range m.items {
		v.Line(m.renderRow(b, i == m.pager.CursorInPage()))
	}

	v.BlankLine()
	if m.confirm.Active() {
		v.Line(RenderTargetInfo(m.confirm.Target, "Delete"))
		v.BlankLine()
		v.Line(RenderConfirmPrompt("Delete this bookmark?"))
		return v.String()
	}

	v.Message(m.Message, m.MessageErr)
	if m.searching {
		v.Help(SearchKeys.Apply, SearchKeys.Cancel)
	} else {
		v.Help(BrowserKeys.Down, BrowserKeys.NextPage, BrowserKeys.Enter, BrowserKeys.Search,
			BrowserKeys.Favorite, BrowserKeys.Open, BrowserKeys.Help, BrowserKeys.Quit)
	}
	return v.String()
}

func (m *BrowserModel) subtitle() string {
	start, end := m.pager.VisibleRange()
	parts := []string{fmt.Sprintf("%d-%d of %d", min(start+1, end), end, m.pager.Total())}
	parts = append(parts, fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	if m.favoritesOnly {
		parts = append(parts, "favorites")
	}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("matching %q", m.query))
	}
	return strings.Join(parts, " · ")
}

func (m *BrowserModel) renderRow(b *domain.Bookmark, selected bool) string {
	fav := " "
	if b.IsFavorite {
		fav = styles.FavoriteMark.String()
	}
	media := " "
	if b.HasMedia() {
		media = styles.MediaMark.String()
	}

	width := m.Width - 36
	if width < 24 {
		width = 60
	}
	text := oneLine(b.Content)
	if m.query != "" {
		text = domain.Snippet(text, m.query, width/2)
	}
	text = truncate(text, width)

	if selected {
		return fmt.Sprintf("%s%s %s", fav, media,
			styles.RowSelected.Render(fmt.Sprintf("%s %-16s %s", b.TweetedAt.Format(time.DateOnly), truncate(b.AuthorHandle, 16), text)))
	}
	return fmt.Sprintf("%s%s %s %s %s", fav, media,
		styles.RowDate.Render(b.TweetedAt.Format(time.DateOnly)),
		styles.RowAuthor.Render(fmt.Sprintf("%-16s", truncate(b.AuthorHandle, 16))),
		RenderMatches(text, m.query),
	)
}

// Reload refetches the current page
func (m *BrowserModel) Reload() tea.Cmd {
	return m.load(m.pager.PageOffset())
}
