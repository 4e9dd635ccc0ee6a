package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/config"
	"movie-ticket-cart/internal/database"
	"movie-ticket-cart/internal/logging"
	"movie-ticket-cart/internal/repositories"
	"movie-ticket-cart/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeProvider := newProvider(cfg, logger)
	defer closeProvider()

	// The catalog loads in the background; pages show a placeholder until it is ready
	movies := catalog.NewService(provider, logger.Named("catalog"), cfg.Catalog.PageSize)
	movies.LoadAsync(ctx)

	store, err := server.NewSessionStore(cfg)
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}

	srv, err := server.New(cfg, logger, movies, store)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newProvider picks the catalog source. A database that cannot be reached
// falls back to the sample catalog so the site still comes up.
func newProvider(cfg *config.Config, logger *zap.Logger) (catalog.Provider, func()) {
	source := cfg.CatalogSource()
	logger = logger.With(zap.String("catalog_source", source))

	switch source {
	case config.CatalogTMDB:
		logger.Info("using TMDB catalog")
		return catalog.NewTMDBClient(cfg.TMDBClient()), func() {}

	case config.CatalogDatabase:
		db, err := database.NewConnection(cfg.DBConnection())
		if err != nil {
			logger.Warn("failed to connect to database, using sample catalog", zap.Error(err))
			return catalog.SampleProvider{}, func() {}
		}
		logger.Info("using database catalog", zap.String("driver", db.Driver))
		return repositories.NewMovieRepository(db), func() { db.Close() }
	}

	logger.Info("using sample catalog")
	return catalog.SampleProvider{}, func() {}
}
