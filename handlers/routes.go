package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes attaches every API route to the router.
func RegisterRoutes(r *mux.Router, catalog *CatalogHandler, lists *ListsHandler) {
	// Catalog gateway
	r.HandleFunc("/popularNewReleases", catalog.PopularNewReleases).Methods(http.MethodGet)
	r.HandleFunc("/searchGameLite/{gameName}", catalog.SearchGameLite).Methods(http.MethodGet)
	r.HandleFunc("/searchGame/{gameName}/{offset}", catalog.SearchGame).Methods(http.MethodGet)
	r.HandleFunc("/gatherGameData/{gameId}", catalog.GatherGameData).Methods(http.MethodGet)
	r.HandleFunc("/getPlayerCount/{gameName}", catalog.GetPlayerCount).Methods(http.MethodGet)
	r.HandleFunc("/top100", catalog.Top100).Methods(http.MethodGet)
	r.HandleFunc("/comingSoon", catalog.ComingSoon).Methods(http.MethodGet)

	// List store
	r.HandleFunc("/getLists", lists.GetLists).Methods(http.MethodGet)
	r.HandleFunc("/getListName/{listId}", lists.GetListName).Methods(http.MethodGet)
	r.HandleFunc("/getListNames/{gameId}", lists.GetListNames).Methods(http.MethodGet)
	r.HandleFunc("/getListData/{listId}/{listName}", lists.GetListData).Methods(http.MethodGet)
	r.HandleFunc("/updateListName", lists.UpdateListName).Methods(http.MethodPut)
	r.HandleFunc("/pinGame", lists.PinGame).Methods(http.MethodPut)
	r.HandleFunc("/createEntry/{name}", lists.CreateEntry).Methods(http.MethodPost)
	r.HandleFunc("/addGame", lists.AddGame).Methods(http.MethodPost)
	r.HandleFunc("/deleteEntry/{name}/{id}", lists.DeleteEntry).Methods(http.MethodDelete)
	r.HandleFunc("/removeGame", lists.RemoveGame).Methods(http.MethodDelete)
}
