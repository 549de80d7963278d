package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"eterea/internal/adapters/tui/styles"
	"eterea/internal/domain"
	"eterea/internal/ports"
)

// DetailKeyMap defines key bindings for the detail view
type DetailKeyMap struct {
	Back     key.Binding
	Favorite key.Binding
	Copy     key.Binding
	Open     key.Binding
}

var DetailKeys = DetailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy URL"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
}

// DetailModel shows one bookmark in full
type DetailModel struct {
	ViewState
	store    ports.BookmarkStore
	opener   ports.URLOpener
	bookmark *domain.Bookmark
	query    string
}

// NewDetailModel creates a new detail view model
func NewDetailModel(store ports.BookmarkStore, opener ports.URLOpener) *DetailModel {
	return &DetailModel{
		store:  store,
		opener: opener,
	}
}

// SetBookmark selects the bookmark to show; query terms are highlighted
func (m *DetailModel) SetBookmark(b *domain.Bookmark, query string) {
	m.bookmark = b
	m.query = query
	m.ClearMessage()
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case favoriteChangedMsg:
		if m.bookmark != nil && m.bookmark.ID == msg.result.ID {
			m.bookmark.IsFavorite = msg.result.IsFavorite
		}
		m.SetMessage(msg.result.Message, false)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case infoMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		if m.bookmark == nil {
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
		m.ClearMessage()
		switch {
		case key.Matches(msg, DetailKeys.Back):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, DetailKeys.Favorite):
			return m, toggleFavoriteCmd(m.store, m.bookmark)
		case key.Matches(msg, DetailKeys.Copy):
			return m, copyURLCmd(m.bookmark)
		case key.Matches(msg, DetailKeys.Open):
			return m, openURLCmd(m.opener, m.bookmark)
		}
	}

	return m, nil
}

// View renders the detail view
func (m *DetailModel) View() string {
	b := m.bookmark
	if b == nil {
		return "No bookmark selected"
	}

	title := b.AuthorName
	if title == "" {
		title = b.AuthorHandle
	}
	if b.IsFavorite {
		title += " " + styles.FavoriteMark.String()
	}

	v := NewViewBuilder()
	v.Raw(RenderTitle(title))
	v.Raw("\n")
	v.Raw(RenderSubtitle(b.AuthorHandle + " · " + b.TweetedAt.Format(time.DateTime)))
	v.Raw("\n\n")

	v.Line(RenderMatches(wrap(b.Content, m.textWidth()), m.query))
	v.BlankLine()
	if b.NoteText != "" {
		v.Line(RenderLabelValue("Note", RenderMatches(b.NoteText, m.query)))
	}
	if b.Comments != "" {
		v.Line(RenderLabelValue("Comments", b.Comments))
	}
	if len(b.Tags) > 0 {
		tags := make([]string, len(b.Tags))
		for i, t := range b.Tags {
			tags[i] = styles.Tag.Render(t)
		}
		v.Line(RenderLabelValue("Tags", strings.Join(tags, ", ")))
	}
	if h := b.Hashtags(); len(h) > 0 {
		v.Line(RenderLabelValue("Hashtags", strings.Join(h, " ")))
	}
	if mentions := b.Mentions(); len(mentions) > 0 {
		v.Line(RenderLabelValue("Mentions", strings.Join(mentions, " ")))
	}
	for _, media := range b.Media {
		v.Line(RenderLabelValue("Media", RenderMuted("["+media.Type.String()+"] ")+media.URL))
	}
	v.Line(RenderLabelValue("URL", styles.URL.Render(b.TweetURL)))
	v.Muted("Imported " + b.ImportedAt.Format(time.DateTime))

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(DetailKeys.Back, DetailKeys.Favorite, DetailKeys.Copy, DetailKeys.Open)
	return v.String()
}

func (m *DetailModel) textWidth() int {
	if m.Width < 40 {
		return 76
	}
	return m.Width - 6
}

// wrap breaks text into lines of at most width runes at word boundaries.
// Existing line breaks are kept.
func wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		var line []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			if len(line) > 0 && len(line)+1+len(w) > width {
				out = append(out, string(line))
				line = line[:0]
			}
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = append(line, w...)
		}
		out = append(out, string(line))
	}
	return strings.Join(out, "\n")
}
