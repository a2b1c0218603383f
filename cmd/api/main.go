package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resline/laundromat-go/internal/config"
	"github.com/resline/laundromat-go/internal/database"
	"github.com/resline/laundromat-go/internal/handlers"
	"github.com/resline/laundromat-go/internal/models"
	"github.com/resline/laundromat-go/internal/services/notify"
	"github.com/resline/laundromat-go/internal/uploads"
	"github.com/resline/laundromat-go/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.LaundryRequest{},
		&models.UserProfile{},
		&models.SavedPhoto{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Prepare upload storage
	saver, err := uploads.NewSaver(cfg.Uploads.Dir, cfg.Uploads.MaxFileSize, cfg.Uploads.MaxFiles)
	if err != nil {
		log.Fatalf("Failed to prepare upload storage: %v", err)
	}

	// 5. Notification channel (link-based, always ready)
	sender := notify.NewLinkSender(cfg.Notify.CountryCode)
	log.Println("✅ WhatsApp integration: Link-based (no QR code needed!)")

	// 6. Admin live feed
	hub := websocket.NewHub()
	go hub.Run()

	// 7. Set up HTTP router
	router := handlers.NewRouter(db, cfg, hub, saver, sender)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(),
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server running on port %s\n", cfg.Port)
		log.Printf("📝 Collection Form: %s/collection\n", cfg.PublicURL)
		log.Printf("🔧 Admin Dashboard: %s/admin\n", cfg.PublicURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
