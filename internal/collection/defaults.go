package collection

import (
	"time"

	"github.com/pipocahq/pipoca/internal/domain"
)

// Fixed ids of the seeded default playlists.
const (
	DefaultActionID = "default-action"
	DefaultComedyID = "default-comedy"
	DefaultSciFiID  = "default-scifi"
	DefaultHorrorID = "default-horror"
)

// DefaultPlaylists returns fresh copies of the four system playlists,
// stamped with the given creation time. They are seeded once, the first
// time the playlists collection is found empty.
func DefaultPlaylists(createdAt time.Time) []domain.Playlist {
	return []domain.Playlist{
		{
			ID:          DefaultActionID,
			Name:        "Ação de Respeito",
			Description: "Filmes e séries cheios de adrenalina",
			Icon:        "🔥",
			Items:       []domain.Item{},
			IsDefault:   true,
			CreatedAt:   createdAt,
		},
		{
			ID:          DefaultComedyID,
			Name:        "Comédia pra Relaxar",
			Description: "Risadas garantidas para descontrair",
			Icon:        "😂",
			Items:       []domain.Item{},
			IsDefault:   true,
			CreatedAt:   createdAt,
		},
		{
			ID:          DefaultSciFiID,
			Name:        "Sci-Fi Clássico",
			Description: "O melhor da ficção científica",
			Icon:        "🚀",
			Items:       []domain.Item{},
			IsDefault:   true,
			CreatedAt:   createdAt,
		},
		{
			ID:          DefaultHorrorID,
			Name:        "Terror de Arrepiar",
			Description: "Para os corajosos de plantão",
			Icon:        "👻",
			Items:       []domain.Item{},
			IsDefault:   true,
			CreatedAt:   createdAt,
		},
	}
}
