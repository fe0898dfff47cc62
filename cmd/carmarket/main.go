package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"carmarket/internal/config"
	"carmarket/internal/dataset"
	"carmarket/internal/graceful"
	"carmarket/internal/http/handlers"
	"carmarket/internal/http/server"
	"carmarket/internal/render"
	"carmarket/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	src, err := dataset.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	md, err := render.NewMarkdown()
	if err != nil {
		log.Fatal(err)
	}
	defer md.Close()

	svc := services.NewListingService(src)
	deps := handlers.NewDeps(svc, md, cfg)
	app := server.New(cfg, deps, server.Views(cfg))

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()
	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[shutdown] %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
