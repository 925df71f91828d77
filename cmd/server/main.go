package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"screenclash/internal/audio"
	"screenclash/internal/chat"
	"screenclash/internal/config"
	"screenclash/internal/database"
	"screenclash/internal/gate"
	"screenclash/internal/handlers"
	"screenclash/internal/parentgate"
	"screenclash/internal/repository"
	"screenclash/internal/security"
	"screenclash/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	// Initialize audio services
	ttsService := audio.NewTTSService(filepath.Join(cfg.StaticFilesPath, "audio"), "fr")
	recordingStore, err := audio.NewRecordingStore(filepath.Join(cfg.StaticFilesPath, "recordings"), cfg.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize recording store: %v", err)
	}
	transcriber := audio.NewTranscriber(cfg.OpenAIAPIKey)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	configService := service.NewConfigService(settingsRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, ttsService)
	historyService := service.NewHistoryService(historyRepo)

	reportService, err := service.NewReportService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize report service: %v", err)
	}

	// The gate manager drives every profile's screen-time countdown
	gateManager := gate.NewManager(exerciseService, historyService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go gateManager.Run(ctx)

	// Parental override gate and attention alert. The passcode is
	// hashed once here so only the hash lives in memory.
	parentPasscodeHash := ""
	if cfg.ParentPasscode != "" {
		parentPasscodeHash, err = security.HashPassword(cfg.ParentPasscode)
		if err != nil {
			log.Fatalf("Failed to hash parent passcode: %v", err)
		}
	}
	parentGate := parentgate.New(parentPasscodeHash, []byte(cfg.UnlockTokenKey), cfg.UnlockTokenTTL)
	alert := parentgate.NewAlert(cfg.AlertDuration)

	// Child assistant providers
	var providers []chat.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, chat.NewOpenAIProvider(cfg.OpenAIAPIKey))
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := chat.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize Gemini provider: %v", err)
		} else {
			providers = append(providers, gemini)
		}
	}
	chatService := chat.NewService(providers...)

	// Initialize handlers
	verifyLimiter := security.NewRateLimiter(10, 1*time.Minute)
	mw := handlers.NewMiddleware(authService, parentGate, verifyLimiter)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	gateHandler := handlers.NewGateHandler(gateManager, configService)
	settingsHandler := handlers.NewSettingsHandler(configService)
	libraryHandler := handlers.NewLibraryHandler(exerciseService)
	historyHandler := handlers.NewHistoryHandler(historyService, reportService)
	parentGateHandler := handlers.NewParentGateHandler(parentGate, alert)
	chatHandler := handlers.NewChatHandler(chatService)
	notesHandler := handlers.NewNotesHandler(noteRepo, transcriber)
	bookmarksHandler := handlers.NewBookmarksHandler(bookmarkRepo)
	recordingsHandler := handlers.NewRecordingsHandler(recordingStore, cfg.UploadMaxSize)

	mux := http.NewServeMux()

	// Parent account routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", mw.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /api/auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleOAuthCallback)

	// Profile routes
	mux.HandleFunc("GET /api/profiles", profileHandler.List)
	mux.HandleFunc("POST /api/profiles", mw.RequireUnlock(profileHandler.Create))
	mux.HandleFunc("DELETE /api/profiles/{profile}", mw.RequireUnlock(profileHandler.Delete))

	// Screen-time gate routes, used by the tablets
	mux.HandleFunc("POST /api/gate/{profile}/activate", gateHandler.Activate)
	mux.HandleFunc("POST /api/gate/{profile}/deactivate", gateHandler.Deactivate)
	mux.HandleFunc("GET /api/gate/{profile}/status", gateHandler.Status)
	mux.HandleFunc("POST /api/gate/{profile}/answer", gateHandler.Answer)
	mux.HandleFunc("POST /api/gate/{profile}/force-unlock", mw.RequireUnlock(gateHandler.ForceUnlock))

	// Gate configuration, behind the parental unlock
	mux.HandleFunc("GET /api/profiles/{profile}/config", settingsHandler.Get)
	mux.HandleFunc("PUT /api/profiles/{profile}/config", mw.RequireUnlock(settingsHandler.Save))
	mux.HandleFunc("DELETE /api/profiles/{profile}/config", mw.RequireUnlock(settingsHandler.Delete))
	mux.HandleFunc("GET /api/configs", mw.RequireUnlock(settingsHandler.List))

	// Content library; tablets read, parents write
	mux.HandleFunc("GET /api/profiles/{profile}/library", libraryHandler.List)
	mux.HandleFunc("POST /api/library", mw.RequireUnlock(libraryHandler.Create))
	mux.HandleFunc("GET /api/library/{id}", libraryHandler.Get)
	mux.HandleFunc("PUT /api/library/{id}", mw.RequireUnlock(libraryHandler.Update))
	mux.HandleFunc("DELETE /api/library/{id}", mw.RequireUnlock(libraryHandler.Delete))

	// History and reports
	mux.HandleFunc("POST /api/history", historyHandler.Create)
	mux.HandleFunc("GET /api/history/{child}", historyHandler.List)
	mux.HandleFunc("GET /api/history/{child}/statistics", historyHandler.Statistics)
	mux.HandleFunc("POST /api/history/{child}/report", mw.RequireUnlock(historyHandler.SendReport))

	// Parental override gate and attention alert
	mux.HandleFunc("POST /api/parentgate/challenge", parentGateHandler.Challenge)
	mux.HandleFunc("POST /api/parentgate/verify", mw.RateLimit(parentGateHandler.Verify))
	mux.HandleFunc("POST /api/alert/{profile}", parentGateHandler.RaiseAlert)
	mux.HandleFunc("GET /api/alert/{profile}", parentGateHandler.AlertStatus)
	mux.HandleFunc("DELETE /api/alert/{profile}", parentGateHandler.AcknowledgeAlert)

	// Child assistant
	mux.HandleFunc("GET /api/chat/providers", chatHandler.Providers)
	mux.HandleFunc("POST /api/chat/{profile}", chatHandler.Send)
	mux.HandleFunc("GET /api/chat/{profile}", chatHandler.History)
	mux.HandleFunc("DELETE /api/chat/{profile}", chatHandler.Reset)

	// Notebook and dictation
	mux.HandleFunc("GET /api/profiles/{profile}/notes", notesHandler.List)
	mux.HandleFunc("POST /api/profiles/{profile}/notes", notesHandler.Create)
	mux.HandleFunc("POST /api/profiles/{profile}/notes/dictate", notesHandler.Dictate)
	mux.HandleFunc("PUT /api/notes/{id}", notesHandler.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", notesHandler.Delete)
	mux.HandleFunc("GET /api/profiles/{profile}/note-categories", notesHandler.ListCategories)
	mux.HandleFunc("POST /api/profiles/{profile}/note-categories", notesHandler.CreateCategory)
	mux.HandleFunc("DELETE /api/note-categories/{id}", notesHandler.DeleteCategory)

	// Browser bookmarks
	mux.HandleFunc("GET /api/profiles/{profile}/bookmarks", bookmarksHandler.List)
	mux.HandleFunc("POST /api/profiles/{profile}/bookmarks", bookmarksHandler.Create)
	mux.HandleFunc("PUT /api/profiles/{profile}/bookmarks/order", bookmarksHandler.Reorder)
	mux.HandleFunc("DELETE /api/bookmarks/{id}", bookmarksHandler.Delete)

	// Recordings and generated audio
	mux.HandleFunc("POST /api/recordings", recordingsHandler.Upload)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(ctx, authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired parent sessions
func cleanupExpiredSessions(ctx context.Context, authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Failed to cleanup expired sessions: %v", err)
			}
		}
	}
}
