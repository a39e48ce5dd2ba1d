package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gameshelf/models"
	listssvc "gameshelf/services/lists"
)

type listStore interface {
	ListAll(ctx context.Context) ([]models.ListMetadata, error)
	GetListName(ctx context.Context, listID int) (string, error)
	ListNamesWithMembership(ctx context.Context, gameID int) ([]models.ListMembership, error)
	GetEntries(ctx context.Context, listID int) ([]models.ListEntry, error)
	CreateList(ctx context.Context, name string) error
	RenameList(ctx context.Context, listID int, newName string) error
	AddGame(ctx context.Context, listID int, entry models.ListEntry) error
	RemoveGame(ctx context.Context, listID, gameID int) error
	PinGame(ctx context.Context, entryID int, pinned bool) error
	DeleteList(ctx context.Context, listID int) error
}

var _ listStore = (*listssvc.Store)(nil)

// ListsHandler maps the list CRUD routes onto the list store. Every route is
// one store call; all failures surface as a bare 500.
type ListsHandler struct {
	store listStore
}

// NewListsHandler creates a new lists handler.
func NewListsHandler(store listStore) *ListsHandler {
	return &ListsHandler{store: store}
}

// GetLists returns every list's metadata.
// GET /getLists
func (h *ListsHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.store.ListAll(r.Context())
	if err != nil {
		slog.Error("lists.get_lists", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, lists)
}

// GetListName returns one list's display name, empty if it does not exist.
// GET /getListName/{listId}
func (h *ListsHandler) GetListName(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.Atoi(mux.Vars(r)["listId"])
	if err != nil {
		slog.Error("lists.get_list_name.bad_id", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	name, err := h.store.GetListName(r.Context(), listID)
	if err != nil {
		slog.Error("lists.get_list_name", "list_id", listID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, name)
}

// GetListNames returns all lists with a membership flag for one game, used
// by the add-to-list picker.
// GET /getListNames/{gameId}
func (h *ListsHandler) GetListNames(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameId"])
	if err != nil {
		slog.Error("lists.get_list_names.bad_id", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	memberships, err := h.store.ListNamesWithMembership(r.Context(), gameID)
	if err != nil {
		slog.Error("lists.get_list_names", "game_id", gameID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, memberships)
}

// GetListData returns all entries for one list. The listName path segment is
// legacy client routing; entries are keyed by id.
// GET /getListData/{listId}/{listName}
func (h *ListsHandler) GetListData(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.Atoi(mux.Vars(r)["listId"])
	if err != nil {
		slog.Error("lists.get_list_data.bad_id", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	entries, err := h.store.GetEntries(r.Context(), listID)
	if err != nil {
		slog.Error("lists.get_list_data", "list_id", listID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

// UpdateListName renames a list.
// PUT /updateListName
func (h *ListsHandler) UpdateListName(w http.ResponseWriter, r *http.Request) {
	var req models.RenameListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("lists.update_list_name.bad_body", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	listID, err := strconv.Atoi(req.ListID)
	if err != nil {
		slog.Error("lists.update_list_name.bad_id", "list_id", req.ListID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.store.RenameList(r.Context(), listID, req.NewName); err != nil {
		slog.Error("lists.update_list_name", "list_id", listID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// PinGame toggles the pin state of one entry.
// PUT /pinGame
func (h *ListsHandler) PinGame(w http.ResponseWriter, r *http.Request) {
	var req models.PinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("lists.pin_game.bad_body", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.store.PinGame(r.Context(), req.EntryID, req.PinState); err != nil {
		slog.Error("lists.pin_game", "entry_id", req.EntryID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// CreateEntry creates a new list.
// POST /createEntry/{name}
func (h *ListsHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.store.CreateList(r.Context(), name); err != nil {
		slog.Error("lists.create_entry", "name", name, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// AddGame adds a game to a list.
// POST /addGame
func (h *ListsHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	var req models.AddGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("lists.add_game.bad_body", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	entry := models.ListEntry{
		GameID:      req.GameID,
		CoverArt:    req.Cover,
		GameName:    req.Name,
		Year:        strconv.Itoa(req.Year),
		Platforms:   req.Platforms,
		SluggedName: req.SluggedName,
	}

	if err := h.store.AddGame(r.Context(), req.ListID, entry); err != nil {
		slog.Error("lists.add_game", "list_id", req.ListID, "game_id", req.GameID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteEntry deletes a list and its entries. The name path segment is legacy
// client routing; deletion is keyed by id.
// DELETE /deleteEntry/{name}/{id}
func (h *ListsHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		slog.Error("lists.delete_entry.bad_id", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.store.DeleteList(r.Context(), listID); err != nil {
		slog.Error("lists.delete_entry", "list_id", listID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RemoveGame removes a game from a list.
// DELETE /removeGame
func (h *ListsHandler) RemoveGame(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("lists.remove_game.bad_body", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.store.RemoveGame(r.Context(), req.ListID, req.GameID); err != nil {
		slog.Error("lists.remove_game", "list_id", req.ListID, "game_id", req.GameID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
