package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/services"
	"github.com/desertthunder/popcorn/internal/session"
	"github.com/desertthunder/popcorn/internal/shared"
	"github.com/desertthunder/popcorn/internal/tasks"
)

// Focus identifies the widget receiving key presses.
type Focus int

const (
	SearchFocus Focus = iota
	ResultsFocus
	WatchedFocus
)

func (f Focus) next() Focus { return (f + 1) % 3 }
func (f Focus) prev() Focus { return (f + 2) % 3 }

// WatchedStore persists the whole watched list.
type WatchedStore interface {
	Save([]models.WatchedMovie) error
}

// Options holds the dependencies of [Model].
type Options struct {
	Catalog        services.Catalog
	Store          WatchedStore
	Watched        []models.WatchedMovie // Initial list, usually loaded from Store
	MinQueryLength int
	Logger         *log.Logger
	OpenURL        func(string) error // Defaults to [shared.OpenBrowser]
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	search  *tasks.SearchFetcher
	detail  *tasks.DetailFetcher
	store   WatchedStore
	logger  *log.Logger
	openURL func(string) error

	state   session.State
	focus   Focus
	status  string
	width   int
	height  int
	input   textinput.Model
	results list.Model
	watched list.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	input := textinput.New()
	input.Prompt = "🔍 "
	input.Placeholder = "Search movies..."
	input.CharLimit = 100
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.warn

	state := session.New(opts.Watched)

	m := &Model{
		ctx:     ctx,
		store:   opts.Store,
		logger:  shared.WithLogger(opts.Logger, "component", "ui"),
		openURL: opts.OpenURL,
		state:   state,
		focus:   SearchFocus,
		input:   input,
		results: newList(state.Search.CountLabel(), nil),
		watched: newList("Watched", watchedItems(state.Watched)),
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}

	m.detail = tasks.NewDetailFetcher(opts.Catalog, opts.Logger)
	m.search = tasks.NewSearchFetcher(opts.Catalog, tasks.SearchOpts{
		MinQueryLength: opts.MinQueryLength,
		OnSearch:       m.closeDetail,
		Logger:         opts.Logger,
	})
	return m
}

// State returns the current session state.
func (m *Model) State() session.State {
	return m.state
}

// Init has nothing to load: the watched list arrives through [Options].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchResult:
		if m.search.Apply(msg.data.(tasks.SearchResult)) {
			m.syncSearch()
		}
	case MsgDetailResult:
		m.detail.Apply(msg.data.(tasks.DetailResult))
	case MsgBrowserOpened:
		data := msg.data.(struct {
			url string
			err error
		})
		if data.err != nil {
			m.logger.Warn("failed to open browser", "url", data.url, "error", data.err)
			m.status = fmt.Sprintf("Could not open %s", data.url)
		}
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.force):
		return m, m.quit()
	case key.Matches(msg, m.keys.focus):
		if msg.String() == "shift+tab" {
			m.setFocus(m.focus.prev())
		} else {
			m.setFocus(m.focus.next())
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.closeDetail()
		return m, nil
	}

	if m.focus == SearchFocus {
		return m.handleSearchKeys(msg)
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.enter):
		if id := m.highlighted(); id != "" {
			return m, m.selectMovie(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.rate):
		n := int(msg.Runes[0] - '0')
		if n == 0 {
			n = session.MaxRating
		}
		if _, watched := m.state.WatchedRating(m.state.Selected); m.state.Panel() == session.DetailPanel && !watched {
			m.state = m.state.Rate(n)
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.addWatched()
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if m.focus == WatchedFocus {
			if item, ok := m.watched.SelectedItem().(watchedItem); ok {
				m.deleteWatched(item.movie.ImdbID)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.openIMDb()
	}

	var cmd tea.Cmd
	if m.focus == ResultsFocus {
		m.results, cmd = m.results.Update(msg)
	} else {
		m.watched, cmd = m.watched.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		m.setFocus(ResultsFocus)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	req := m.search.SetQuery(m.ctx, m.input.Value())
	m.syncSearch()
	if req == nil {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.fetchSearch(req), m.spinner.Tick)
}

// selectMovie toggles the detail panel for imdbID.
func (m *Model) selectMovie(imdbID string) tea.Cmd {
	m.state = m.state.Select(imdbID)
	if m.state.Panel() == session.SummaryPanel {
		m.detail.Close()
		return nil
	}

	req := m.detail.Select(m.ctx, imdbID)
	if req == nil {
		return nil
	}
	return tea.Batch(m.fetchDetail(req), m.spinner.Tick)
}

func (m *Model) closeDetail() {
	m.state = m.state.Close()
	m.detail.Close()
}

func (m *Model) addWatched() {
	if !m.state.CanAdd() {
		return
	}

	d := m.detail.State()
	if d.Detail == nil || d.ImdbID != m.state.Selected {
		return
	}

	m.state = m.state.AddWatched(d.Detail.ToWatched(float64(m.state.Rating)))
	m.detail.Close()
	m.persist()
}

func (m *Model) deleteWatched(imdbID string) {
	m.state = m.state.DeleteWatched(imdbID)
	if m.state.Selected == imdbID {
		m.closeDetail()
	}
	m.persist()
}

// persist saves the whole list and refreshes the watched pane.
func (m *Model) persist() {
	m.watched.SetItems(watchedItems(m.state.Watched))
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.state.Watched); err != nil {
		m.logger.Error("failed to save watched list", "error", err)
		m.status = "Could not save your watched list"
	}
}

func (m *Model) syncSearch() {
	m.state = m.state.WithSearch(m.search.State())
	m.results.SetItems(movieItems(m.state.Search.Results))
	m.results.Title = m.state.Search.CountLabel()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == SearchFocus {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// highlighted returns the imdbID under the cursor of the focused list.
func (m *Model) highlighted() string {
	switch m.focus {
	case ResultsFocus:
		if item, ok := m.results.SelectedItem().(movieItem); ok {
			return item.movie.ImdbID
		}
	case WatchedFocus:
		if item, ok := m.watched.SelectedItem().(watchedItem); ok {
			return item.movie.ImdbID
		}
	}
	return ""
}

func (m *Model) loading() bool {
	return m.state.Search.Loading || m.detail.State().Loading
}

func (m *Model) quit() tea.Cmd {
	m.search.Close()
	m.detail.Close()
	return tea.Quit
}

func (m *Model) fetchSearch(req *tasks.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		return searchResultMsg(m.search.Fetch(req))
	}
}

func (m *Model) fetchDetail(req *tasks.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		return detailResultMsg(m.detail.Fetch(req))
	}
}

func (m *Model) openIMDb() tea.Cmd {
	id := m.state.Selected
	if id == "" {
		id = m.highlighted()
	}
	if id == "" {
		return nil
	}

	url := shared.IMDbURL(id)
	open := m.openURL
	return func() tea.Msg {
		return browserOpenedMsg(url, open(url))
	}
}

func (m *Model) resize() {
	left, right := m.paneWidths()
	height := max(m.height-8, 4)
	m.input.Width = max(left-6, 10)
	m.results.SetSize(left-4, height)
	m.watched.SetSize(right-4, max(height-6, 3))
}

func (m *Model) paneWidths() (int, int) {
	w := max(m.width, 40)
	return w / 2, w - w/2
}

// View renders both panes and the help bar.
func (m *Model) View() string {
	left, right := m.paneWidths()

	leftPane := styles.Pane(m.focus != WatchedFocus).Width(left - 2).Render(m.renderSearch())

	var body string
	if m.state.Panel() == session.DetailPanel {
		body = m.renderDetail()
	} else {
		body = m.renderSummary()
	}
	rightPane := styles.Pane(m.focus == WatchedFocus).Width(right - 2).Render(body)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = styles.warn.Render(m.status) + "\n" + footer
	}

	title := styles.title.Render("🍿 popcorn")
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane), footer)
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	search := m.state.Search
	switch {
	case search.Loading:
		b.WriteString(fmt.Sprintf("%s Loading...", m.spinner.View()))
	case search.Err != nil:
		b.WriteString(styles.err.Render("⛔️ " + shared.UserMessage(search.Err)))
	default:
		b.WriteString(m.results.View())
	}
	return b.String()
}

func (m *Model) renderDetail() string {
	d := m.detail.State()
	switch {
	case d.Loading:
		return fmt.Sprintf("%s Loading...", m.spinner.View())
	case d.Err != nil:
		return styles.err.Render("⛔️ " + shared.UserMessage(d.Err))
	case d.Detail == nil:
		return ""
	}

	movie := d.Detail
	var b strings.Builder
	b.WriteString(styles.title.Render(movie.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s • %s\n", movie.Released, movie.Runtime))
	b.WriteString(movie.Genre + "\n")
	b.WriteString(fmt.Sprintf("⭐️ %s IMDb rating\n", movie.ImdbRating))
	if movie.Poster != "" && movie.Poster != "N/A" {
		b.WriteString(styles.help.Render(movie.Poster) + "\n")
	}
	b.WriteString("\n")

	if rating, ok := m.state.WatchedRating(movie.ImdbID); ok {
		b.WriteString(styles.ok.Render(fmt.Sprintf("You rated this movie %s ⭐️", number(rating))))
	} else {
		b.WriteString(renderStars(m.state.Rating))
		if m.state.CanAdd() {
			b.WriteString("\n" + styles.ok.Render("[a] + Add to list"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.help.Render(movie.Plot))
	b.WriteString(fmt.Sprintf("\n\nStarring %s\nDirected by %s", movie.Actors, movie.Director))
	return b.String()
}

func renderStars(rating int) string {
	var b strings.Builder
	for i := 1; i <= session.MaxRating; i++ {
		if i <= rating {
			b.WriteString(styles.star.Render("★"))
		} else {
			b.WriteString("☆")
		}
	}
	if rating > 0 {
		b.WriteString(fmt.Sprintf(" %d", rating))
	}
	return b.String()
}

func (m *Model) renderSummary() string {
	s := m.state.Summary()
	header := fmt.Sprintf("Movies you watched\n#️⃣ %s  ⭐️ %s  🌟 %s  ⏳ %s",
		s.CountLabel(), s.ImdbLabel(), s.UserLabel(), s.RuntimeLabel())
	return lipgloss.JoinVertical(lipgloss.Left, styles.title.Render(header), m.watched.View())
}
