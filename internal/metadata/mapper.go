package metadata

import (
	"strconv"
	"strings"

	"github.com/pipocahq/pipoca/internal/domain"
)

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// GenreFallback is used when TMDB reports no genre or an unknown id.
const GenreFallback = "Geral"

// genreNames maps TMDB genre ids to the display names the app stores.
var genreNames = map[int]string{
	28:    "Ação",
	12:    "Aventura",
	16:    "Animação",
	35:    "Comédia",
	80:    "Crime",
	99:    "Documentário",
	18:    "Drama",
	10751: "Família",
	14:    "Fantasia",
	36:    "História",
	27:    "Terror",
	10402: "Música",
	9648:  "Mistério",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV",
	53:    "Thriller",
	10752: "Guerra",
	37:    "Western",
}

// GenreName resolves a TMDB genre id, falling back to GenreFallback.
func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return GenreFallback
}

// mapMovie normalizes a TMDB movie into a domain item. Ids are prefixed with
// the kind so movie and tv ids never collide.
func mapMovie(m movieResult) domain.Item {
	title := m.Title
	if title == "" {
		title = m.Name
	}
	return domain.Item{
		ID:          "movie-" + strconv.Itoa(m.ID),
		Title:       title,
		Type:        domain.MediaTypeMovie,
		Genre:       firstGenre(m.GenreIDs, m.Genres),
		Description: orFallback(m.Overview, "Sem descrição disponível"),
		Rating:      m.VoteAverage,
		Poster:      imageURL(m.PosterPath),
		Image:       imageURL(m.BackdropPath),
		ReleaseDate: m.ReleaseDate,
		Runtime:     m.Runtime,
	}
}

// mapTV normalizes a TMDB series into a domain item.
func mapTV(t tvResult) domain.Item {
	title := t.Name
	if title == "" {
		title = t.OriginalName
	}
	return domain.Item{
		ID:          "tv-" + strconv.Itoa(t.ID),
		Title:       title,
		Type:        domain.MediaTypeSeries,
		Genre:       firstGenre(t.GenreIDs, t.Genres),
		Description: orFallback(t.Overview, "Sem descrição disponível"),
		Rating:      t.VoteAverage,
		Poster:      imageURL(t.PosterPath),
		Image:       imageURL(t.BackdropPath),
		ReleaseDate: t.FirstAirDate,
		Seasons:     t.NumberOfSeasons,
		Episodes:    t.NumberOfEpisodes,
	}
}

func mapMulti(r multiResult) (domain.Item, bool) {
	switch r.MediaType {
	case "movie":
		return mapMovie(movieResult{
			ID:           r.ID,
			Title:        r.Title,
			Name:         r.Name,
			GenreIDs:     r.GenreIDs,
			Overview:     r.Overview,
			VoteAverage:  r.VoteAverage,
			PosterPath:   r.PosterPath,
			BackdropPath: r.BackdropPath,
			ReleaseDate:  r.ReleaseDate,
		}), true
	case "tv":
		return mapTV(tvResult{
			ID:           r.ID,
			Name:         r.Name,
			OriginalName: r.OriginalName,
			GenreIDs:     r.GenreIDs,
			Overview:     r.Overview,
			VoteAverage:  r.VoteAverage,
			PosterPath:   r.PosterPath,
			BackdropPath: r.BackdropPath,
			FirstAirDate: r.FirstAirDate,
		}), true
	default:
		// People and other media types are not catalog items.
		return domain.Item{}, false
	}
}

// firstGenre resolves the first listed genre. List endpoints carry ids,
// detail endpoints carry expanded genre objects.
func firstGenre(ids []int, expanded []genre) string {
	if len(ids) > 0 {
		return GenreName(ids[0])
	}
	if len(expanded) > 0 {
		return GenreName(expanded[0].ID)
	}
	return GenreFallback
}

func imageURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}

func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
