package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"prefscale/internal/auth"
	"prefscale/internal/blob"
	"prefscale/internal/blogs"
	"prefscale/internal/config"
	"prefscale/internal/contact"
	"prefscale/internal/db"
	"prefscale/internal/httpserver"
	"prefscale/internal/logging"
)

func main() {
	ctx := context.Background()
	logger := logging.New()

	_ = godotenv.Load()
	cfg := config.Load()

	dbConn, err := db.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	if err := db.RunMigrations(ctx, dbConn, "sql"); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	accountStore := auth.NewStore(dbConn)
	if cfg.SeedPath != "" {
		if err := accountStore.SeedFromFile(ctx, cfg.SeedPath); err != nil {
			log.Fatalf("seed accounts: %v", err)
		}
	}
	authSvc := auth.NewService(accountStore, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, cfg.TokenTTL)

	blogStore := blogs.NewStore(dbConn)
	contactStore := contact.NewStore(dbConn)

	blobs, err := blob.NewMinioStore(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("connect object store: %v", err)
	}

	handler := httpserver.NewRouter(logger, authSvc, blogStore, contactStore, blobs, cfg.AdminEmail)
	server := httpserver.New(cfg.HTTPAddr, handler, logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
