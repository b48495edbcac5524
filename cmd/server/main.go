package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edp-shifts/internal/config"
	"edp-shifts/internal/credential"
	"edp-shifts/internal/database"
	"edp-shifts/internal/logging"
	"edp-shifts/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := credential.Seed(ctx, credential.NewStore(db, log.Named("credential")), cfg.SeedBranches, cfg.AdminPassword)
	if err != nil {
		log.Fatal("seed accounts", zap.Error(err))
	}
	if n > 0 {
		log.Info("seeded accounts", zap.Int("created", n))
	}

	app := server.New(cfg, db, log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}
