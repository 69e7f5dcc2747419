package catalog

import "github.com/pipocahq/pipoca/internal/domain"

// MockItems is the bundled suggestion catalog, served when no TMDB API key
// is configured.
var MockItems = []domain.Item{
	{
		ID:          "m1",
		Title:       "Stranger Things",
		Type:        domain.MediaTypeSeries,
		Genre:       "Sci-Fi",
		Description: "Adolescentes enfrentam mistérios sobrenaturais em uma pequena cidade americana nos anos 80.",
	},
	{
		ID:          "m2",
		Title:       "Oppenheimer",
		Type:        domain.MediaTypeMovie,
		Genre:       "Drama",
		Description: "A vida e dilemas do físico J. Robert Oppenheimer durante o desenvolvimento da bomba atômica.",
	},
	{
		ID:          "m3",
		Title:       "Matrix",
		Type:        domain.MediaTypeMovie,
		Genre:       "Sci-Fi",
		Description: "Um hacker descobre a verdade sobre a realidade e seu papel na guerra contra seus controladores.",
	},
	{
		ID:          "m4",
		Title:       "The Crown",
		Type:        domain.MediaTypeSeries,
		Genre:       "Drama",
		Description: "Drama histórico sobre o reinado da Rainha Elizabeth II e a família real britânica.",
	},
	{
		ID:          "m5",
		Title:       "The Office",
		Type:        domain.MediaTypeSeries,
		Genre:       "Comédia",
		Description: "Mockumentary sobre o cotidiano hilário de funcionários de um escritório.",
	},
	{
		ID:          "m6",
		Title:       "Parasita",
		Type:        domain.MediaTypeMovie,
		Genre:       "Thriller",
		Description: "Tensão social e reviravoltas inesperadas quando uma família pobre se infiltra na casa de ricos.",
	},
	{
		ID:          "m7",
		Title:       "Breaking Bad",
		Type:        domain.MediaTypeSeries,
		Genre:       "Crime",
		Description: "Professor de química com câncer transforma-se em fabricante de metanfetamina.",
	},
	{
		ID:          "m8",
		Title:       "Amélie Poulain",
		Type:        domain.MediaTypeMovie,
		Genre:       "Romance",
		Description: "Uma jovem sonhadora e criativa decide mudar a vida das pessoas ao seu redor.",
	},
	{
		ID:          "m9",
		Title:       "Dark",
		Type:        domain.MediaTypeSeries,
		Genre:       "Sci-Fi",
		Description: "Mistérios e viagens no tempo conectam quatro famílias em uma pequena cidade alemã.",
	},
	{
		ID:          "m10",
		Title:       "Inception",
		Type:        domain.MediaTypeMovie,
		Genre:       "Ação",
		Description: "Ladrão especializado em extrair segredos do subconsciente através dos sonhos.",
	},
}
