package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learner-account-be/internal/bootstrap"
	"learner-account-be/internal/config"
	"learner-account-be/internal/server"
	"learner-account-be/internal/tracer"
	"learner-account-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Auth.JwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// 1.5 Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Database (optional, audit trail only)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Panicf("Unable to migrate database: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg)
	defer container.Close()

	// 4. Start Background Services
	log.Println("Background: Starting Audit Consumer...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
