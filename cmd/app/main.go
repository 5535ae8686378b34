package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/Rut304/polybot-sub000/internal/di"
	"github.com/Rut304/polybot-sub000/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("app exited with error: %v", err)
	}
}
