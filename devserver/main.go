package main

import (
	"log"
	"os"

	"simplechat"
	"simplechat/relay"
	"simplechat/server"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if it exists
	godotenv.Load()

	cfg := simplechat.LoadConfig()
	router := server.NewRouter(relay.New(cfg))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	simplechat.Logger.Info("serving chat relay", "port", port, "endpoint", cfg.EndpointURL)
	if err := server.Start(router, ":"+port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
