package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"movie-ticket-cart/internal/config"
	"movie-ticket-cart/internal/database"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DBConnection())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch {
	case *statusFlag:
		status, err := db.GetMigrationStatus()
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		fmt.Printf("Migration status (%s):\n", db.Driver)
		for _, s := range status {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("  %03d_%s  %s\n", s.Version, s.Name, state)
		}
	case *upFlag:
		ran, err := db.RunMigrations()
		for _, m := range ran {
			fmt.Printf("Applied migration %03d_%s\n", m.Version, m.Name)
		}
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		if len(ran) == 0 {
			fmt.Println("No pending migrations.")
			return
		}
		fmt.Println("All migrations completed successfully!")
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/migrate -status   # Show migration status")
		fmt.Println("  go run ./cmd/migrate -up       # Run pending migrations")
		os.Exit(1)
	}
}
