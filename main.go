package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gameshelf/config"
	"gameshelf/handlers"
	"gameshelf/internal/database"
	"gameshelf/services/igdb"
	"gameshelf/services/lists"
	"gameshelf/services/steamcharts"
	"gameshelf/utils"
)

func main() {
	// .env is optional; a real environment wins over the file
	_ = godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		slog.Error("server.config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.NewDB(ctx, database.Config{DSN: settings.Database.DSN()})
	cancel()
	if err != nil {
		slog.Error("server.database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	igdbClient := igdb.NewClient(settings.IGDB.ClientID, settings.IGDB.AccessToken)
	if !igdbClient.HasCredentials() {
		slog.Warn("server.igdb_credentials_missing", "hint", "set CLIENT_ID and AUTH")
	}

	store := lists.NewStore(db.Connection())

	catalogHandler := handlers.NewCatalogHandler(igdbClient, steamcharts.NewClient())
	listsHandler := handlers.NewListsHandler(store)

	router := utils.NewRouter()
	handlers.RegisterRoutes(router, catalogHandler, listsHandler)

	addr := fmt.Sprintf(":%d", settings.Port)
	slog.Info("server.listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server.stopped", "error", err)
		os.Exit(1)
	}
}
