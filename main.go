package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"kisanagro-backend/app"
	"kisanagro-backend/cache"
	"kisanagro-backend/config"
	"kisanagro-backend/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		} else {
			log.Printf("Loaded environment variables from .env")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize application
	if err := app.Initialize(cfg); err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()
	defer cache.CloseRedis()

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	port := cfg.Port
	// Remove leading colon if present (PORT from some hosts doesn't include it)
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	log.Printf("Server starting on %s", addr)
	log.Printf("Inquiry endpoint: POST http://localhost:%s/api/inquiries", port)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
