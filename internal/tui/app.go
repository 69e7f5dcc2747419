// Package tui implements the terminal UI: a tabbed browser over the catalog
// and the local collections (favorites, reviews, playlists, profile).
package tui

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipocahq/pipoca/internal/catalog"
	"github.com/pipocahq/pipoca/internal/collection"
	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/pipocahq/pipoca/internal/metadata"
	"github.com/pipocahq/pipoca/internal/stats"
	"github.com/pipocahq/pipoca/internal/tui/styles"
)

type tab int

const (
	tabCatalog tab = iota
	tabFavorites
	tabReviews
	tabPlaylists
	tabProfile
)

var tabNames = []string{"Catálogo", "Favoritos", "Reviews", "Playlists", "Perfil"}

type mode int

const (
	modeList mode = iota
	modeFilter
	modeDetails
	modeReviewForm
	modePlaylistForm
	modePickPlaylist
	modePrefsForm
	modeConfirm
)

// statusTTL is how long a status line stays visible.
const statusTTL = 4 * time.Second

// clearStatusMsg clears the status line when its sequence is still current.
type clearStatusMsg struct{ seq int }

// confirmState holds a pending destructive action awaiting confirmation.
type confirmState struct {
	prompt string
	action tea.Cmd
}

// Model is the root bubbletea model.
type Model struct {
	store   *collection.Store
	catalog *catalog.Service
	logger  *slog.Logger
	keys    KeyMap

	width  int
	height int

	tab  tab
	mode mode

	spinner spinner.Model
	loading bool

	status      string
	statusLevel statusLevel
	statusSeq   int

	// Catalog tab
	catalogItems  []domain.Item // last popular/search payload
	results       []catalog.FilterResult
	typeFilter    catalog.TypeFilter
	filterInput   textinput.Model
	catalogCursor int

	// Favorites tab
	favorites []domain.Item
	favStats  stats.Favorites
	favCursor int

	// Reviews tab
	reviews   []domain.Review
	revStats  stats.Reviews
	sortBy    string // "date" or "rating"
	revCursor int

	// Playlists tab
	playlists    []domain.Playlist
	plCursor     int
	plOpen       int // index of the opened playlist, -1 in list view
	plItemCursor int

	// Profile tab
	prefs *domain.Preferences

	// Overlays
	detailItem   domain.Item
	reviewForm   reviewForm
	playlistForm playlistForm
	prefsForm    prefsForm
	pickItem     domain.Item
	pickCursor   int
	confirm      confirmState
}

// New creates the root model.
func New(store *collection.Store, svc *catalog.Service, logger *slog.Logger, defaultTab, reviewSort string) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.SpinnerFrames, FPS: time.Second / 10}
	sp.Style = styles.AccentStyle

	fi := textinput.New()
	fi.Placeholder = "filtrar títulos..."
	fi.CharLimit = 64
	fi.Width = 40

	m := Model{
		store:       store,
		catalog:     svc,
		logger:      logger,
		keys:        DefaultKeyMap(),
		spinner:     sp,
		sortBy:      "date",
		filterInput: fi,
		plOpen:      -1,
	}

	switch defaultTab {
	case "favorites":
		m.tab = tabFavorites
	case "reviews":
		m.tab = tabReviews
	case "playlists":
		m.tab = tabPlaylists
	case "profile":
		m.tab = tabProfile
	}
	if reviewSort == "rating" {
		m.sortBy = "rating"
	}
	return m
}

// Init loads the catalog plus every collection up front; tab switches then
// only re-read what changed.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
		m.loadFavorites(),
		m.loadReviews(),
		m.loadPlaylists(),
		m.loadPreferences(),
	)
}

// Update is the root message handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case catalogMsg:
		m.loading = false
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		m.catalogItems = msg.items
		m.refreshResults()
		return m, nil

	case searchMsg:
		m.loading = false
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		m.catalogItems = msg.items
		m.refreshResults()
		return m, nil

	case favoritesMsg:
		m.favorites = msg.items
		m.favStats = stats.ComputeFavorites(msg.items)
		m.favCursor = clamp(m.favCursor, len(m.favorites))
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil

	case reviewsMsg:
		m.reviews = m.sortReviews(msg.reviews)
		m.revStats = stats.ComputeReviews(msg.reviews)
		m.revCursor = clamp(m.revCursor, len(m.reviews))
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil

	case detailsMsg:
		m.loading = false
		m.detailItem = msg.item
		m.mode = modeDetails
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil

	case playlistsMsg:
		m.playlists = msg.playlists
		m.plCursor = clamp(m.plCursor, len(m.playlists))
		m.pickCursor = clamp(m.pickCursor, len(m.playlists))
		if m.plOpen >= len(m.playlists) {
			m.plOpen = -1
		}
		if m.plOpen >= 0 {
			m.plItemCursor = clamp(m.plItemCursor, len(m.playlists[m.plOpen].Items))
		}
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil

	case preferencesMsg:
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), statusError)
		}
		m.prefs = msg.prefs
		return m, nil

	case actionMsg:
		next, cmd := m.setStatus(msg.status, msg.level)
		m = next
		if msg.touched == "" {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.reloadFor(msg.touched))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches keys to the active overlay or the list handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFilter:
		return m.updateFilter(msg)
	case modeDetails:
		return m.updateDetails(msg)
	case modeReviewForm:
		return m.updateReviewForm(msg)
	case modePlaylistForm:
		return m.updatePlaylistForm(msg)
	case modePickPlaylist:
		return m.updatePickPlaylist(msg)
	case modePrefsForm:
		return m.updatePrefsForm(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

// updateList handles keys in plain list mode.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % 5)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + 4) % 5)
	case key.Matches(msg, m.keys.Tab1):
		return m.switchTab(tabCatalog)
	case key.Matches(msg, m.keys.Tab2):
		return m.switchTab(tabFavorites)
	case key.Matches(msg, m.keys.Tab3):
		return m.switchTab(tabReviews)
	case key.Matches(msg, m.keys.Tab4):
		return m.switchTab(tabPlaylists)
	case key.Matches(msg, m.keys.Tab5):
		return m.switchTab(tabProfile)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	}

	switch m.tab {
	case tabCatalog:
		return m.updateCatalogList(msg)
	case tabFavorites:
		return m.updateFavoritesList(msg)
	case tabReviews:
		return m.updateReviewsList(msg)
	case tabPlaylists:
		return m.updatePlaylistsList(msg)
	case tabProfile:
		return m.updateProfileList(msg)
	}
	return m, nil
}

func (m Model) updateCatalogList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.selectedCatalogItem(); ok {
			return m.openDetails(item)
		}
	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		m.filterInput.SetValue("")
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keys.CycleType):
		m.typeFilter = (m.typeFilter + 1) % 3
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.filterInput.SetValue("")
		return m, tea.Batch(m.spinner.Tick, m.loadCatalog())

	case key.Matches(msg, m.keys.Favorite):
		if item, ok := m.selectedCatalogItem(); ok {
			return m, m.addFavorite(item)
		}
	case key.Matches(msg, m.keys.Review):
		if item, ok := m.selectedCatalogItem(); ok {
			return m.openReviewForm(item)
		}
	case key.Matches(msg, m.keys.AddTo):
		if item, ok := m.selectedCatalogItem(); ok {
			return m.openPickPlaylist(item)
		}
	}
	return m, nil
}

func (m Model) updateFavoritesList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.selectedFavorite()
	switch {
	case key.Matches(msg, m.keys.Enter):
		if ok {
			return m.openDetails(item)
		}
	case key.Matches(msg, m.keys.Delete):
		if ok {
			return m, m.removeFavorite(item)
		}
	case key.Matches(msg, m.keys.Review):
		if ok {
			return m.openReviewForm(item)
		}
	case key.Matches(msg, m.keys.AddTo):
		if ok {
			return m.openPickPlaylist(item)
		}
	case key.Matches(msg, m.keys.Refresh):
		m.store.Invalidate(collection.KeyFavorites)
		return m, m.loadFavorites()
	}
	return m, nil
}

func (m Model) updateReviewsList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Sort):
		if m.sortBy == "date" {
			m.sortBy = "rating"
		} else {
			m.sortBy = "date"
		}
		m.reviews = m.sortReviews(m.reviews)
		return m, nil

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Enter):
		if r, ok := m.selectedReview(); ok {
			return m.openReviewEdit(r)
		}

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selectedReview(); ok {
			m.mode = modeConfirm
			m.confirm = confirmState{
				prompt: "Excluir o review de " + r.ItemTitle + "?",
				action: m.deleteReview(r.ID),
			}
		}

	case key.Matches(msg, m.keys.Refresh):
		m.store.Invalidate(collection.KeyReviews)
		return m, m.loadReviews()
	}
	return m, nil
}

func (m Model) updatePlaylistsList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.plOpen >= 0 {
		return m.updatePlaylistDetail(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		if len(m.playlists) > 0 {
			m.plOpen = m.plCursor
			m.plItemCursor = 0
		}
	case key.Matches(msg, m.keys.New):
		return m.openPlaylistForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.selectedPlaylist(); ok {
			if p.IsDefault {
				return m.setStatus("Playlists padrão não podem ser editadas", statusWarn)
			}
			return m.openPlaylistForm(&p)
		}
	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selectedPlaylist(); ok {
			if p.IsDefault {
				return m.setStatus("Playlists padrão não podem ser excluídas", statusWarn)
			}
			m.mode = modeConfirm
			m.confirm = confirmState{
				prompt: "Excluir a playlist " + p.Name + "?",
				action: m.deletePlaylist(p),
			}
		}
	case key.Matches(msg, m.keys.Refresh):
		m.store.Invalidate(collection.KeyPlaylists)
		return m, m.loadPlaylists()
	}
	return m, nil
}

func (m Model) updatePlaylistDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.playlists[m.plOpen]
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.plOpen = -1
	case key.Matches(msg, m.keys.Enter):
		if m.plItemCursor < len(p.Items) {
			return m.openDetails(p.Items[m.plItemCursor])
		}
	case key.Matches(msg, m.keys.Delete):
		if m.plItemCursor < len(p.Items) {
			return m, m.removeFromPlaylist(p, p.Items[m.plItemCursor])
		}
	case key.Matches(msg, m.keys.Favorite):
		if m.plItemCursor < len(p.Items) {
			return m, m.addFavorite(p.Items[m.plItemCursor])
		}
	case key.Matches(msg, m.keys.Review):
		if m.plItemCursor < len(p.Items) {
			return m.openReviewForm(p.Items[m.plItemCursor])
		}
	}
	return m, nil
}

func (m Model) updateProfileList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Enter):
		return m.openPrefsForm()
	}
	return m, nil
}

// openDetails resolves and shows the full record for an item.
func (m Model) openDetails(item domain.Item) (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadDetails(item))
}

// updateDetails handles keys while the details overlay is shown. Collection
// actions stay available on the shown item.
func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	case key.Matches(msg, m.keys.Favorite):
		return m, m.addFavorite(m.detailItem)
	case key.Matches(msg, m.keys.Review):
		return m.openReviewForm(m.detailItem)
	case key.Matches(msg, m.keys.AddTo):
		return m.openPickPlaylist(m.detailItem)
	}
	return m, nil
}

// updateFilter handles keys while the catalog filter input is focused.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.mode = modeList
		m.filterInput.Blur()
		query := m.filterInput.Value()
		// Remote catalogs search the metadata source on submit; the mock
		// catalog and short queries stay on the local fuzzy filter.
		if m.catalog.Remote() && utf8.RuneCountInString(query) >= metadata.MinQueryLength {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.searchCatalog(query))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.refreshResults()
	return m, cmd
}

// updateConfirm handles the yes/no destructive-action prompt.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "s", "enter":
		action := m.confirm.action
		m.mode = modeList
		m.confirm = confirmState{}
		return m, action
	case "n", "esc", "q":
		m.mode = modeList
		m.confirm = confirmState{}
	}
	return m, nil
}

// === Helpers ===

// switchTab changes tabs, dropping the cached blob for the destination so the
// view reflects persisted state.
func (m Model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	switch t {
	case tabFavorites:
		m.store.Invalidate(collection.KeyFavorites)
		return m, m.loadFavorites()
	case tabReviews:
		m.store.Invalidate(collection.KeyReviews)
		return m, m.loadReviews()
	case tabPlaylists:
		m.store.Invalidate(collection.KeyPlaylists)
		return m, m.loadPlaylists()
	case tabProfile:
		m.store.Invalidate(collection.KeyPreferences)
		return m, m.loadPreferences()
	}
	return m, nil
}

// reloadFor maps a touched collection key to its load command.
func (m Model) reloadFor(key string) tea.Cmd {
	switch key {
	case collection.KeyFavorites:
		return m.loadFavorites()
	case collection.KeyReviews:
		return m.loadReviews()
	case collection.KeyPlaylists:
		return m.loadPlaylists()
	case collection.KeyPreferences:
		return m.loadPreferences()
	}
	return nil
}

func (m Model) setStatus(text string, level statusLevel) (Model, tea.Cmd) {
	m.status = text
	m.statusLevel = level
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) moveCursor(delta int) {
	switch m.tab {
	case tabCatalog:
		m.catalogCursor = step(m.catalogCursor, delta, len(m.results))
	case tabFavorites:
		m.favCursor = step(m.favCursor, delta, len(m.favorites))
	case tabReviews:
		m.revCursor = step(m.revCursor, delta, len(m.reviews))
	case tabPlaylists:
		if m.plOpen >= 0 {
			m.plItemCursor = step(m.plItemCursor, delta, len(m.playlists[m.plOpen].Items))
		} else {
			m.plCursor = step(m.plCursor, delta, len(m.playlists))
		}
	}
}

// refreshResults re-runs the type filter and fuzzy filter over the current
// catalog payload.
func (m *Model) refreshResults() {
	base := catalog.FilterByType(m.catalogItems, m.typeFilter)
	m.results = catalog.NewIndex(base).Filter(m.filterInput.Value())
	m.catalogCursor = clamp(m.catalogCursor, len(m.results))
}

func (m Model) selectedCatalogItem() (domain.Item, bool) {
	if m.catalogCursor < len(m.results) {
		return m.results[m.catalogCursor].Item, true
	}
	return domain.Item{}, false
}

func (m Model) selectedFavorite() (domain.Item, bool) {
	if m.favCursor < len(m.favorites) {
		return m.favorites[m.favCursor], true
	}
	return domain.Item{}, false
}

func (m Model) selectedReview() (domain.Review, bool) {
	if m.revCursor < len(m.reviews) {
		return m.reviews[m.revCursor], true
	}
	return domain.Review{}, false
}

func (m Model) selectedPlaylist() (domain.Playlist, bool) {
	if m.plCursor < len(m.playlists) {
		return m.playlists[m.plCursor], true
	}
	return domain.Playlist{}, false
}

func (m Model) sortReviews(reviews []domain.Review) []domain.Review {
	if m.sortBy == "rating" {
		return stats.SortReviewsByRating(reviews)
	}
	return stats.SortReviewsByDate(reviews)
}

func clamp(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func step(cursor, delta, length int) int {
	if length == 0 {
		return 0
	}
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
