package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/contacthub/internal/server"
	"github.com/dmitrijs2005/contacthub/internal/server/config"
)

func main() {

	// missing .env is fine, settings fall back to real env vars
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
