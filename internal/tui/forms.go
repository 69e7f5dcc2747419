package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipocahq/pipoca/internal/domain"
)

// === Review form ===

type reviewForm struct {
	item    domain.Item
	rating  int
	comment textinput.Model
	editing bool
}

func (m Model) openReviewForm(item domain.Item) (tea.Model, tea.Cmd) {
	ci := textinput.New()
	ci.Placeholder = "comentário (opcional)"
	ci.CharLimit = domain.MaxReviewComment
	ci.Width = 50
	ci.Focus()

	form := reviewForm{item: item, rating: 5, comment: ci}

	// Editing resumes from the stored review.
	for _, r := range m.reviews {
		if r.ID == item.ID {
			form.rating = r.Rating
			form.editing = true
			ci.SetValue(r.Comment)
			form.comment = ci
			break
		}
	}

	m.reviewForm = form
	m.mode = modeReviewForm
	return m, textinput.Blink
}

func (m Model) openReviewEdit(r domain.Review) (tea.Model, tea.Cmd) {
	// Reviews carry an item snapshot; rebuild enough of it to re-review.
	return m.openReviewForm(domain.Item{
		ID:     r.ID,
		Title:  r.ItemTitle,
		Type:   r.ItemType,
		Poster: r.ItemPoster,
		Genre:  r.ItemGenre,
	})
}

func (m Model) updateReviewForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.reviewForm.rating < domain.MaxReviewRating {
			m.reviewForm.rating++
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.reviewForm.rating > domain.MinReviewRating {
			m.reviewForm.rating--
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		review := domain.NewReview(m.reviewForm.item, m.reviewForm.rating, m.reviewForm.comment.Value())
		m.mode = modeList
		return m, m.saveReview(review)
	}

	var cmd tea.Cmd
	m.reviewForm.comment, cmd = m.reviewForm.comment.Update(msg)
	return m, cmd
}

// === Playlist form ===

type playlistForm struct {
	id      string // empty for a new playlist
	name    textinput.Model
	desc    textinput.Model
	iconIdx int
	focus   int // 0 name, 1 description, 2 icon
}

func (m Model) openPlaylistForm(existing *domain.Playlist) (tea.Model, tea.Cmd) {
	ni := textinput.New()
	ni.Placeholder = "nome"
	ni.CharLimit = domain.MaxPlaylistName
	ni.Width = 40
	ni.Focus()

	di := textinput.New()
	di.Placeholder = "descrição (opcional)"
	di.CharLimit = domain.MaxPlaylistDesc
	di.Width = 40

	form := playlistForm{name: ni, desc: di}
	if existing != nil {
		form.id = existing.ID
		ni.SetValue(existing.Name)
		di.SetValue(existing.Description)
		form.name = ni
		form.desc = di
		for i, icon := range domain.PlaylistIcons {
			if icon == existing.Icon {
				form.iconIdx = i
				break
			}
		}
	}

	m.playlistForm = form
	m.mode = modePlaylistForm
	return m, textinput.Blink
}

func (m Model) updatePlaylistForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.playlistForm

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		return m, nil

	case msg.String() == "tab":
		f.setFocus((f.focus + 1) % 3)
		return m, nil
	case msg.String() == "shift+tab":
		f.setFocus((f.focus + 2) % 3)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		playlist := domain.Playlist{
			ID:          f.id,
			Name:        f.name.Value(),
			Description: f.desc.Value(),
			Icon:        domain.PlaylistIcons[f.iconIdx],
		}
		isNew := f.id == ""
		if isNew {
			playlist.ID = m.store.NewPlaylistID()
		}
		m.mode = modeList
		return m, m.savePlaylist(playlist, isNew)
	}

	if f.focus == 2 {
		switch msg.String() {
		case "left", "h":
			f.iconIdx = (f.iconIdx + len(domain.PlaylistIcons) - 1) % len(domain.PlaylistIcons)
		case "right", "l":
			f.iconIdx = (f.iconIdx + 1) % len(domain.PlaylistIcons)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return m, cmd
}

func (f *playlistForm) setFocus(focus int) {
	f.focus = focus
	f.name.Blur()
	f.desc.Blur()
	switch focus {
	case 0:
		f.name.Focus()
	case 1:
		f.desc.Focus()
	}
}

// === Add-to-playlist picker ===

func (m Model) openPickPlaylist(item domain.Item) (tea.Model, tea.Cmd) {
	if len(m.playlists) == 0 {
		return m.setStatus("Nenhuma playlist disponível", statusWarn)
	}
	m.pickItem = item
	m.pickCursor = 0
	m.mode = modePickPlaylist
	return m, nil
}

func (m Model) updatePickPlaylist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.pickCursor = step(m.pickCursor, -1, len(m.playlists))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.pickCursor = step(m.pickCursor, 1, len(m.playlists))
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		// A reload can shrink the list while the picker is open.
		if m.pickCursor >= len(m.playlists) {
			m.mode = modeList
			return m, nil
		}
		playlist := m.playlists[m.pickCursor]
		m.mode = modeList
		return m, m.addToPlaylist(playlist, m.pickItem)
	}
	return m, nil
}

// === Preferences form ===

type prefsForm struct {
	name      textinput.Model
	selected  map[string]bool
	genreCur  int
	minRating float64
	focus     int // 0 name, 1 genres, 2 min rating
}

func (m Model) openPrefsForm() (tea.Model, tea.Cmd) {
	ni := textinput.New()
	ni.Placeholder = "seu nome"
	ni.CharLimit = 40
	ni.Width = 30
	ni.Focus()

	form := prefsForm{name: ni, selected: make(map[string]bool)}
	if m.prefs != nil {
		ni.SetValue(m.prefs.UserName)
		form.name = ni
		for _, g := range m.prefs.Genres {
			form.selected[g] = true
		}
		form.minRating = m.prefs.MinRating
	}

	m.prefsForm = form
	m.mode = modePrefsForm
	return m, textinput.Blink
}

func (m Model) updatePrefsForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.prefsForm

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		return m, nil

	case msg.String() == "tab":
		f.setFocus((f.focus + 1) % 3)
		return m, nil
	case msg.String() == "shift+tab":
		f.setFocus((f.focus + 2) % 3)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		prefs := domain.Preferences{
			UserName:  f.name.Value(),
			MinRating: f.minRating,
		}
		for _, g := range domain.ProfileGenres {
			if f.selected[g] {
				prefs.Genres = append(prefs.Genres, g)
			}
		}
		m.mode = modeList
		return m, m.savePreferences(prefs)
	}

	switch f.focus {
	case 1:
		switch msg.String() {
		case "up", "k":
			f.genreCur = step(f.genreCur, -1, len(domain.ProfileGenres))
		case "down", "j":
			f.genreCur = step(f.genreCur, 1, len(domain.ProfileGenres))
		case " ":
			g := domain.ProfileGenres[f.genreCur]
			f.selected[g] = !f.selected[g]
		}
		return m, nil
	case 2:
		switch msg.String() {
		case "left", "h":
			if f.minRating > 0 {
				f.minRating -= 0.5
			}
		case "right", "l":
			if f.minRating < domain.MaxPreferenceRating {
				f.minRating += 0.5
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return m, cmd
}

func (f *prefsForm) setFocus(focus int) {
	f.focus = focus
	if focus == 0 {
		f.name.Focus()
	} else {
		f.name.Blur()
	}
}
