package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	igdbsvc "gameshelf/services/igdb"
	scsvc "gameshelf/services/steamcharts"
)

type catalogService interface {
	PopularNewReleases(ctx context.Context) ([]igdbsvc.GameSummary, error)
	SearchGameLite(ctx context.Context, gameName string) ([]igdbsvc.GameSummary, error)
	SearchGame(ctx context.Context, gameName string, offset int) ([]igdbsvc.SearchResult, error)
	GatherGameData(ctx context.Context, gameID int) ([]igdbsvc.GameDetail, error)
	Top100(ctx context.Context) ([]igdbsvc.TopGame, error)
	ComingSoon(ctx context.Context) ([]igdbsvc.UpcomingGame, error)
}

type playerCountService interface {
	PlayerCount(ctx context.Context, gameName string) (string, error)
}

var _ catalogService = (*igdbsvc.Client)(nil)
var _ playerCountService = (*scsvc.Client)(nil)

// CatalogHandler maps catalog routes onto the IGDB and Steam Charts clients.
// Each route is one outbound call; failures become a bare 500 so third-party
// error detail never reaches the browser.
type CatalogHandler struct {
	catalog catalogService
	players playerCountService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog catalogService, players playerCountService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, players: players}
}

// PopularNewReleases returns recent well-rated releases.
// GET /popularNewReleases
func (h *CatalogHandler) PopularNewReleases(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.PopularNewReleases(r.Context())
	if err != nil {
		slog.Error("catalog.popular_new_releases", "error", err)
		internalError(w)
		return
	}
	writeJSON(w, games)
}

// SearchGameLite returns the short dropdown search results.
// GET /searchGameLite/{gameName}
func (h *CatalogHandler) SearchGameLite(w http.ResponseWriter, r *http.Request) {
	gameName := mux.Vars(r)["gameName"]

	games, err := h.catalog.SearchGameLite(r.Context(), gameName)
	if err != nil {
		slog.Error("catalog.search_game_lite", "game_name", gameName, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, games)
}

// SearchGame returns a page of full search results.
// GET /searchGame/{gameName}/{offset}
func (h *CatalogHandler) SearchGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameName := vars["gameName"]

	offset, err := strconv.Atoi(vars["offset"])
	if err != nil {
		slog.Error("catalog.search_game.bad_offset", "offset", vars["offset"], "error", err)
		internalError(w)
		return
	}

	games, err := h.catalog.SearchGame(r.Context(), gameName, offset)
	if err != nil {
		slog.Error("catalog.search_game", "game_name", gameName, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, games)
}

// GatherGameData returns the detail projection for one game.
// GET /gatherGameData/{gameId}
func (h *CatalogHandler) GatherGameData(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameId"])
	if err != nil {
		slog.Error("catalog.gather_game_data.bad_id", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	game, err := h.catalog.GatherGameData(r.Context(), gameID)
	if err != nil {
		slog.Error("catalog.gather_game_data", "game_id", gameID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, game)
}

// GetPlayerCount returns the raw Steam Charts search page for a game name;
// the front end extracts the figures it wants.
// GET /getPlayerCount/{gameName}
func (h *CatalogHandler) GetPlayerCount(w http.ResponseWriter, r *http.Request) {
	gameName := mux.Vars(r)["gameName"]

	page, err := h.players.PlayerCount(r.Context(), gameName)
	if err != nil {
		slog.Error("catalog.player_count", "game_name", gameName, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, page)
}

// Top100 returns the highest rated games on IGDB.
// GET /top100
func (h *CatalogHandler) Top100(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.Top100(r.Context())
	if err != nil {
		slog.Error("catalog.top100", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, games)
}

// ComingSoon returns the most anticipated upcoming games.
// GET /comingSoon
func (h *CatalogHandler) ComingSoon(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.ComingSoon(r.Context())
	if err != nil {
		slog.Error("catalog.coming_soon", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, games)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// internalError writes the generic failure body the browser client expects
// on the search routes.
func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
}
