package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipocahq/pipoca/internal/collection"
	"github.com/pipocahq/pipoca/internal/domain"
)

// === Loads ===

func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		items, err := m.catalog.Popular(context.Background(), 1)
		return catalogMsg{items: items, err: err}
	}
}

func (m Model) searchCatalog(query string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.catalog.Search(context.Background(), query)
		return searchMsg{query: query, items: items, err: err}
	}
}

func (m Model) loadDetails(item domain.Item) tea.Cmd {
	return func() tea.Msg {
		full, err := m.catalog.Details(context.Background(), item)
		if err != nil {
			return detailsMsg{item: item, err: err}
		}
		return detailsMsg{item: full}
	}
}

func (m Model) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		items, err := m.store.Favorites(context.Background())
		return favoritesMsg{items: items, err: err}
	}
}

func (m Model) loadReviews() tea.Cmd {
	return func() tea.Msg {
		reviews, err := m.store.Reviews(context.Background())
		return reviewsMsg{reviews: reviews, err: err}
	}
}

func (m Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.store.Playlists(context.Background())
		return playlistsMsg{playlists: playlists, err: err}
	}
}

func (m Model) loadPreferences() tea.Cmd {
	return func() tea.Msg {
		prefs, err := m.store.Preferences(context.Background())
		return preferencesMsg{prefs: prefs, err: err}
	}
}

// === Mutations ===

func (m Model) addFavorite(item domain.Item) tea.Cmd {
	return func() tea.Msg {
		err := m.store.AddFavorite(context.Background(), item)
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			return actionMsg{status: fmt.Sprintf("%s já está nos favoritos", item.Title), level: statusWarn}
		}
		if err != nil {
			return failureMsg(err)
		}
		return actionMsg{
			status:  fmt.Sprintf("%s adicionado aos favoritos", item.Title),
			touched: collection.KeyFavorites,
		}
	}
}

func (m Model) removeFavorite(item domain.Item) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RemoveFavorite(context.Background(), item.ID); err != nil {
			return failureMsg(err)
		}
		return actionMsg{
			status:  fmt.Sprintf("%s removido dos favoritos", item.Title),
			touched: collection.KeyFavorites,
		}
	}
}

func (m Model) saveReview(review domain.Review) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.store.SaveReview(context.Background(), review); err != nil {
			return failureMsg(err)
		}
		return actionMsg{status: "Review salvo", touched: collection.KeyReviews}
	}
}

func (m Model) deleteReview(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.DeleteReview(context.Background(), id); err != nil {
			return failureMsg(err)
		}
		return actionMsg{status: "Review excluído", touched: collection.KeyReviews}
	}
}

func (m Model) savePlaylist(playlist domain.Playlist, isNew bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.SavePlaylist(context.Background(), playlist); err != nil {
			return failureMsg(err)
		}
		status := fmt.Sprintf("Playlist %q atualizada", playlist.Name)
		if isNew {
			status = fmt.Sprintf("Playlist %q criada", playlist.Name)
		}
		return actionMsg{status: status, touched: collection.KeyPlaylists}
	}
}

func (m Model) deletePlaylist(playlist domain.Playlist) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.DeletePlaylist(context.Background(), playlist.ID); err != nil {
			return failureMsg(err)
		}
		return actionMsg{
			status:  fmt.Sprintf("Playlist %q excluída", playlist.Name),
			touched: collection.KeyPlaylists,
		}
	}
}

func (m Model) addToPlaylist(playlist domain.Playlist, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		err := m.store.AddToPlaylist(context.Background(), playlist.ID, item)
		if errors.Is(err, domain.ErrAlreadyInPlaylist) {
			return actionMsg{
				status: fmt.Sprintf("%s já está em %q", item.Title, playlist.Name),
				level:  statusWarn,
			}
		}
		if err != nil {
			return failureMsg(err)
		}
		return actionMsg{
			status:  fmt.Sprintf("%s adicionado a %q", item.Title, playlist.Name),
			touched: collection.KeyPlaylists,
		}
	}
}

func (m Model) removeFromPlaylist(playlist domain.Playlist, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RemoveFromPlaylist(context.Background(), playlist.ID, item.ID); err != nil {
			return failureMsg(err)
		}
		return actionMsg{
			status:  fmt.Sprintf("%s removido de %q", item.Title, playlist.Name),
			touched: collection.KeyPlaylists,
		}
	}
}

func (m Model) savePreferences(prefs domain.Preferences) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.SavePreferences(context.Background(), prefs); err != nil {
			return failureMsg(err)
		}
		return actionMsg{status: "Perfil salvo", touched: collection.KeyPreferences}
	}
}

// failureMsg maps a store error onto the status line. Validation failures are
// warnings the user can fix; everything else is a storage-level error.
func failureMsg(err error) actionMsg {
	if domain.IsValidation(err) {
		return actionMsg{status: err.Error(), level: statusWarn}
	}
	return actionMsg{status: err.Error(), level: statusError, err: err}
}
