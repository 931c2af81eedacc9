package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/paxth/paxth/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.toml"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.MustNewServer(configPath)
	r := srv.SetupRouter()

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
