// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"surat-palm-api-server/config"
	"surat-palm-api-server/internal/api/routes"
	"surat-palm-api-server/internal/auth"
	"surat-palm-api-server/internal/database"
	"surat-palm-api-server/internal/queue"
	"surat-palm-api-server/internal/socket"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// 1. Load environment and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWT.Secret)

	// 2. Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := client.Database(cfg.Mongo.DBName)

	// 3. Seed the factory directory and the admin account
	if err := database.SeedFactories(db); err != nil {
		log.Fatalf("Failed to seed factories: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	// 4. Queue Palm store. Queue state is daily operational data and lives in
	// process memory only; a restart clears it.
	queueStore := queue.NewStore(queue.SystemClock())

	// 5. WebSocket hub for chat push
	wsHub := socket.NewHub()

	// 6. Wire everything into the router
	router := routes.SetupRouter(cfg, db, queueStore, wsHub)

	// 7. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
