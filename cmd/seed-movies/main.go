package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/config"
	"movie-ticket-cart/internal/database"
	"movie-ticket-cart/internal/repositories"
)

func main() {
	sampleFlag := flag.Bool("sample", false, "Seed the built-in sample movies instead of fetching from TMDB")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var provider catalog.Provider = catalog.SampleProvider{}
	if !*sampleFlag {
		if cfg.TMDB.Token == "" {
			log.Fatal("TMDB_TOKEN is not set; pass -sample to seed the sample movies")
		}
		provider = catalog.NewTMDBClient(cfg.TMDBClient())
	}

	db, err := database.NewConnection(cfg.DBConnection())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if _, err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	movies, err := provider.Movies(ctx)
	if err != nil {
		log.Fatal("Failed to fetch movies:", err)
	}

	repo := repositories.NewMovieRepository(db)
	if err := repo.ReplaceAll(ctx, movies); err != nil {
		log.Fatal("Failed to store movies:", err)
	}

	fmt.Printf("Seeded %d movies into the %s database\n", len(movies), db.Driver)
	for i, m := range movies {
		fmt.Printf("  %2d. %s (%d)\n", i+1, m.Title, m.ID)
	}
	fmt.Println("Run the server with CATALOG_SOURCE=database to serve them.")
}
