// Command main runs the database seeder for Warbler.
package main

import (
	"flag"
	"log"

	"github.com/theandrewmo/warbler/internal/config"
	"github.com/theandrewmo/warbler/internal/database"
	"github.com/theandrewmo/warbler/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numWarbles := flag.Int("warbles", 300, "Number of warbles to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing to the database")
	presetFile := flag.String("preset-file", "seed-presets.yml", "Path to the YAML preset file")
	preset := flag.String("preset", "", "Apply a named preset from the preset file (e.g. demo)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)\n", *preset)
	} else {
		log.Printf("Target: %d users, %d warbles, clean=%v\n", *numUsers, *numWarbles, *shouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *preset != "" {
		if err := seed.ApplyPreset(db, *presetFile, *preset, *dryRun); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
	} else {
		seeder := seed.NewSeeder(db, seed.Options{
			NumUsers:    *numUsers,
			NumWarbles:  *numWarbles,
			ShouldClean: *shouldClean,
			DryRun:      *dryRun,
		})
		if err := seeder.Run(); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
