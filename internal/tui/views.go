package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pipocahq/pipoca/internal/catalog"
	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/pipocahq/pipoca/internal/tui/styles"
)

// maxVisibleRows caps list height before scrolling kicks in.
const maxVisibleRows = 12

// View renders the whole screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch m.mode {
	case modeDetails:
		b.WriteString(m.viewDetails())
	case modeReviewForm:
		b.WriteString(m.viewReviewForm())
	case modePlaylistForm:
		b.WriteString(m.viewPlaylistForm())
	case modePickPlaylist:
		b.WriteString(m.viewPickPlaylist())
	case modePrefsForm:
		b.WriteString(m.viewPrefsForm())
	case modeConfirm:
		b.WriteString(m.viewConfirm())
	default:
		b.WriteString(m.viewTab())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			tabs[i] = styles.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTab() string {
	switch m.tab {
	case tabCatalog:
		return m.viewCatalog()
	case tabFavorites:
		return m.viewFavorites()
	case tabReviews:
		return m.viewReviews()
	case tabPlaylists:
		return m.viewPlaylists()
	case tabProfile:
		return m.viewProfile()
	}
	return ""
}

// === Catalog ===

func (m Model) viewCatalog() string {
	var b strings.Builder

	source := "catálogo local"
	if m.catalog.Remote() {
		source = "TMDB"
	}
	header := fmt.Sprintf("%s • %s", source, typeFilterLabel(m.typeFilter))
	b.WriteString(styles.SubtitleStyle.Render(header))
	b.WriteString("\n")

	if m.mode == modeFilter || m.filterInput.Value() != "" {
		b.WriteString(styles.AccentStyle.Render("/ "))
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		return b.String() + m.spinner.View() + styles.DimStyle.Render(" carregando...")
	}
	if len(m.results) == 0 {
		return b.String() + styles.DimStyle.Render("Nenhum título encontrado")
	}

	start, end := window(m.catalogCursor, len(m.results))
	for i := start; i < end; i++ {
		r := m.results[i]
		title := highlightTitle(r.Item.Title, r.MatchedIndexes)
		line := fmt.Sprintf("%s  %s", title, styles.DimStyle.Render(r.Item.Meta()))
		if rating := r.Item.FormattedRating(); rating != "" {
			line += "  " + styles.AccentStyle.Render(rating)
		}
		b.WriteString(cursorPrefix(i == m.catalogCursor))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// highlightTitle re-renders a title with matched filter positions accented.
// Match indexes refer to the lowercased title, which has the same rune
// positions as the original.
func highlightTitle(title string, matched []int) string {
	if len(matched) == 0 {
		return styles.TitleStyle.Render(title)
	}
	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}
	var b strings.Builder
	for i, r := range []rune(title) {
		if hit[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}

func typeFilterLabel(f catalog.TypeFilter) string {
	switch f {
	case catalog.TypeMovies:
		return "Filmes"
	case catalog.TypeSeries:
		return "Séries"
	}
	return "Todos"
}

// === Favorites ===

func (m Model) viewFavorites() string {
	var b strings.Builder

	s := m.favStats
	header := fmt.Sprintf("%d favoritos • %d filmes • %d séries • %s",
		s.Total, s.Movies, s.Series, formatMinutes(s.TotalMinutes))
	if s.FavoriteGenre != "" {
		header += fmt.Sprintf(" • gênero top: %s", s.FavoriteGenre)
	}
	b.WriteString(styles.SubtitleStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.favorites) == 0 {
		return b.String() + styles.DimStyle.Render("Nenhum favorito ainda. Use 'f' no catálogo.")
	}

	start, end := window(m.favCursor, len(m.favorites))
	for i := start; i < end; i++ {
		item := m.favorites[i]
		b.WriteString(cursorPrefix(i == m.favCursor))
		b.WriteString(styles.TitleStyle.Render(item.Title))
		b.WriteString("  ")
		b.WriteString(styles.DimStyle.Render(item.Meta()))
		b.WriteString("\n")
	}
	return b.String()
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

// === Reviews ===

func (m Model) viewReviews() string {
	var b strings.Builder

	s := m.revStats
	header := fmt.Sprintf("%d reviews • média %.1f • %d filmes • %d séries • ordenado por %s",
		s.Count, s.Average, s.Movies, s.Series, sortLabel(m.sortBy))
	b.WriteString(styles.SubtitleStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.reviews) == 0 {
		return b.String() + styles.DimStyle.Render("Nenhum review ainda. Use 'r' sobre um título.")
	}

	start, end := window(m.revCursor, len(m.reviews))
	for i := start; i < end; i++ {
		r := m.reviews[i]
		b.WriteString(cursorPrefix(i == m.revCursor))
		b.WriteString(styles.AccentStyle.Render(r.Stars()))
		b.WriteString("  ")
		b.WriteString(styles.TitleStyle.Render(r.ItemTitle))
		b.WriteString("  ")
		b.WriteString(styles.DimStyle.Render(r.Date.Format("02/01/2006")))
		b.WriteString("\n")
		if r.Comment != "" {
			b.WriteString("    ")
			b.WriteString(styles.SubtitleStyle.Render(truncate(r.Comment, 70)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func sortLabel(sortBy string) string {
	if sortBy == "rating" {
		return "nota"
	}
	return "data"
}

// === Playlists ===

func (m Model) viewPlaylists() string {
	if m.plOpen >= 0 && m.plOpen < len(m.playlists) {
		return m.viewPlaylistDetail(m.playlists[m.plOpen])
	}

	var b strings.Builder
	if len(m.playlists) == 0 {
		return styles.DimStyle.Render("Nenhuma playlist. Use 'n' para criar.")
	}

	for i, p := range m.playlists {
		b.WriteString(cursorPrefix(i == m.plCursor))
		b.WriteString(p.Icon)
		b.WriteString(" ")
		b.WriteString(styles.TitleStyle.Render(p.Name))
		b.WriteString("  ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d itens", len(p.Items))))
		if p.IsDefault {
			b.WriteString("  ")
			b.WriteString(styles.DimStyle.Render("padrão"))
		}
		b.WriteString("\n")
		if p.Description != "" {
			b.WriteString("    ")
			b.WriteString(styles.SubtitleStyle.Render(truncate(p.Description, 70)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewPlaylistDetail(p domain.Playlist) string {
	var b strings.Builder
	b.WriteString(p.Icon)
	b.WriteString(" ")
	b.WriteString(styles.TitleStyle.Render(p.Name))
	if p.Description != "" {
		b.WriteString("  ")
		b.WriteString(styles.SubtitleStyle.Render(p.Description))
	}
	b.WriteString("\n\n")

	if len(p.Items) == 0 {
		return b.String() + styles.DimStyle.Render("Playlist vazia. Use 'p' sobre um título para adicionar.")
	}

	start, end := window(m.plItemCursor, len(p.Items))
	for i := start; i < end; i++ {
		item := p.Items[i]
		b.WriteString(cursorPrefix(i == m.plItemCursor))
		b.WriteString(styles.TitleStyle.Render(item.Title))
		b.WriteString("  ")
		b.WriteString(styles.DimStyle.Render(item.Meta()))
		b.WriteString("\n")
	}
	return b.String()
}

// === Profile ===

func (m Model) viewProfile() string {
	if m.prefs == nil {
		return styles.DimStyle.Render("Perfil não configurado. Pressione 'e' para criar.")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.prefs.UserName))
	b.WriteString("\n\n")
	b.WriteString(styles.SubtitleStyle.Render("Gêneros favoritos: "))
	if len(m.prefs.Genres) == 0 {
		b.WriteString(styles.DimStyle.Render("nenhum"))
	} else {
		b.WriteString(strings.Join(m.prefs.Genres, ", "))
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Nota mínima: %.1f", m.prefs.MinRating)))
	return b.String()
}

// === Overlays ===

func (m Model) viewDetails() string {
	item := m.detailItem
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(item.Title))
	if year := item.Year(); year > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" (%d)", year)))
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(item.Meta()))
	if rating := item.FormattedRating(); rating != "" {
		b.WriteString("  ")
		b.WriteString(styles.AccentStyle.Render(rating))
	}
	b.WriteString("\n")

	switch item.Type {
	case domain.MediaTypeMovie:
		if item.Runtime > 0 {
			b.WriteString(styles.DimStyle.Render(formatMinutes(item.Runtime)))
			b.WriteString("\n")
		}
	case domain.MediaTypeSeries:
		if item.Seasons > 0 || item.Episodes > 0 {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d temporadas • %d episódios", item.Seasons, item.Episodes)))
			b.WriteString("\n")
		}
	}

	if item.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(64).Render(item.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("f favoritar • r avaliar • p playlist • esc fechar"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) viewReviewForm() string {
	f := m.reviewForm
	var b strings.Builder

	title := "Avaliar " + f.item.Title
	if f.editing {
		title = "Editar review de " + f.item.Title
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentStyle.Render(domain.Review{Rating: f.rating}.Stars()))
	b.WriteString(styles.DimStyle.Render("  ↑/↓ ajusta a nota"))
	b.WriteString("\n\n")
	b.WriteString(f.comment.View())
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("enter salva • esc cancela"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) viewPlaylistForm() string {
	f := m.playlistForm
	var b strings.Builder

	title := "Nova playlist"
	if f.id != "" {
		title = "Editar playlist"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(formLabel("Nome", f.focus == 0))
	b.WriteString(f.name.View())
	b.WriteString("\n")
	b.WriteString(formLabel("Descrição", f.focus == 1))
	b.WriteString(f.desc.View())
	b.WriteString("\n")
	b.WriteString(formLabel("Ícone", f.focus == 2))
	for i, icon := range domain.PlaylistIcons {
		if i == f.iconIdx {
			b.WriteString(styles.SelectedStyle.Render(icon))
		} else {
			b.WriteString(" " + icon + " ")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("tab alterna campos • enter salva • esc cancela"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) viewPickPlaylist() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Adicionar " + m.pickItem.Title + " a:"))
	b.WriteString("\n\n")
	for i, p := range m.playlists {
		b.WriteString(cursorPrefix(i == m.pickCursor))
		b.WriteString(p.Icon)
		b.WriteString(" ")
		b.WriteString(p.Name)
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  (%d itens)", len(p.Items))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("enter adiciona • esc cancela"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) viewPrefsForm() string {
	f := m.prefsForm
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Editar perfil"))
	b.WriteString("\n\n")
	b.WriteString(formLabel("Nome", f.focus == 0))
	b.WriteString(f.name.View())
	b.WriteString("\n")
	b.WriteString(formLabel("Gêneros", f.focus == 1))
	b.WriteString("\n")
	for i, g := range domain.ProfileGenres {
		mark := "[ ]"
		if f.selected[g] {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s", mark, g)
		if f.focus == 1 && i == f.genreCur {
			line = styles.AccentStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(formLabel("Nota mínima", f.focus == 2))
	b.WriteString(fmt.Sprintf("%.1f", f.minRating))
	if f.focus == 2 {
		b.WriteString(styles.DimStyle.Render("  ←/→ ajusta"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("tab alterna campos • espaço marca gênero • enter salva • esc cancela"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(styles.WarnStyle.Render(m.confirm.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("s/enter confirma • n/esc cancela"))
	return styles.ModalStyle.Render(b.String())
}

// === Chrome ===

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	switch m.statusLevel {
	case statusError:
		return styles.ErrorStyle.Render("✗ " + m.status)
	case statusWarn:
		return styles.WarnStyle.Render("⚠ " + m.status)
	}
	return styles.SuccessStyle.Render("✓ " + m.status)
}

func (m Model) viewHelp() string {
	var help string
	switch m.tab {
	case tabCatalog:
		help = "enter detalhes • / filtrar • t tipo • f favoritar • r avaliar • p playlist • R atualizar • q sair"
	case tabFavorites:
		help = "enter detalhes • d remover • r avaliar • p playlist • q sair"
	case tabReviews:
		help = "enter editar • s ordenar • d excluir • q sair"
	case tabPlaylists:
		if m.plOpen >= 0 {
			help = "enter detalhes • d remover item • f favoritar • r avaliar • esc voltar"
		} else {
			help = "enter abrir • n nova • e editar • d excluir • q sair"
		}
	case tabProfile:
		help = "e editar • q sair"
	}
	return styles.DimStyle.Render(help)
}

func formLabel(label string, focused bool) string {
	text := label + ": "
	if focused {
		return styles.AccentStyle.Render(text)
	}
	return styles.SubtitleStyle.Render(text)
}

func cursorPrefix(selected bool) string {
	if selected {
		return styles.AccentStyle.Render("▶ ")
	}
	return "  "
}

// window returns the visible slice bounds keeping the cursor in view.
// truncate shortens a string to the given width with ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		if width > len(s) {
			return s
		}
		return s[:width]
	}
	return s[:width-3] + "..."
}

func window(cursor, length int) (int, int) {
	if length <= maxVisibleRows {
		return 0, length
	}
	start := cursor - maxVisibleRows/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisibleRows
	if end > length {
		end = length
		start = end - maxVisibleRows
	}
	return start, end
}
