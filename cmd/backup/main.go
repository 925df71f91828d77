package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"screenclash/internal/config"
	"screenclash/internal/database"
	"screenclash/internal/repository"
	"screenclash/internal/service"
)

func main() {
	output := flag.String("o", "", "output file (default: screenclash-backup-<date>.json.gz)")
	flag.Parse()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	backupService := service.NewBackupService(
		repository.NewProfileRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewExerciseRepository(db),
		repository.NewHistoryRepository(db),
	)

	path := *output
	if path == "" {
		path = fmt.Sprintf("screenclash-backup-%s.json.gz", time.Now().Format("2006-01-02"))
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create backup file: %v", err)
	}
	defer f.Close()

	if err := backupService.Export(f); err != nil {
		os.Remove(path)
		log.Fatalf("Backup failed: %v", err)
	}

	log.Printf("Backup written to %s", path)
}
