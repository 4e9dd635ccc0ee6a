package catalog

import (
	"context"

	"movie-ticket-cart/internal/models"
)

// SampleProvider serves a fixed catalog when no remote source is configured
type SampleProvider struct{}

func (SampleProvider) Movies(ctx context.Context) ([]models.MovieRef, error) {
	movies := []models.MovieRef{
		{
			ID:          278,
			Title:       "The Shawshank Redemption",
			Description: "Imprisoned in the 1940s for the double murder of his wife and her lover, upstanding banker Andy Dufresne begins a new life at the Shawshank prison.",
		},
		{
			ID:          238,
			Title:       "The Godfather",
			Description: "Spanning the years 1945 to 1955, a chronicle of the fictional Italian-American Corleone crime family.",
		},
		{
			ID:          240,
			Title:       "The Godfather Part II",
			Description: "In the continuing saga of the Corleone crime family, a young Vito Corleone grows up in Sicily and in 1910s New York.",
		},
		{
			ID:          424,
			Title:       "Schindler's List",
			Description: "The true story of how businessman Oskar Schindler saved over a thousand Jewish lives from the Nazis while they worked as slaves in his factory.",
		},
		{
			ID:          389,
			Title:       "12 Angry Men",
			Description: "The defense and the prosecution have rested and the jury is filing into the jury room to decide if a young man is guilty or innocent of murdering his father.",
		},
		{
			ID:          129,
			Title:       "Spirited Away",
			Description: "A young girl, Chihiro, becomes trapped in a strange new world of spirits.",
		},
		{
			ID:          155,
			Title:       "The Dark Knight",
			Description: "Batman raises the stakes in his war on crime and sets out to dismantle the remaining criminal organizations that plague the streets.",
		},
		{
			ID:          497,
			Title:       "The Green Mile",
			Description: "A supernatural tale set on death row in a Southern prison, where gentle giant John Coffey possesses the mysterious power to heal people's ailments.",
		},
		{
			ID:          680,
			Title:       "Pulp Fiction",
			Description: "A burger-loving hit man, his philosophical partner, a drug-addled gangster's moll and a washed-up boxer converge in this sprawling crime caper.",
		},
	}
	return movies, nil
}
