package models

import "time"

// ListMetadata is one row of the lists table: a user-created list plus its
// cached entry count and up to four cover image ids shown on the list card.
type ListMetadata struct {
	ListID         int    `json:"ListId"`
	ListName       string `json:"ListName"`
	SluggedName    string `json:"SluggedName"`
	GameCount      int    `json:"GameCount"`
	PinnedGameURL1 string `json:"PinnedGameURL1"`
	PinnedGameURL2 string `json:"PinnedGameURL2"`
	PinnedGameURL3 string `json:"PinnedGameURL3"`
	PinnedGameURL4 string `json:"PinnedGameURL4"`
}

// ListEntry is one game saved to a list.
type ListEntry struct {
	EntryID     int        `json:"EntryId"`
	GameID      int        `json:"GameId"`
	CoverArt    string     `json:"CoverArt"`
	GameName    string     `json:"GameName"`
	Year        string     `json:"Year"`
	Platforms   string     `json:"Platforms"`
	IsPinned    bool       `json:"IsPinned"`
	DatePinned  *time.Time `json:"DatePinned"`
	SluggedName string     `json:"SluggedName"`
}

// ListMembership reports, for one list, whether a given game is already in it.
// Returned by the add-to-list picker so the UI can grey out lists that
// already contain the game.
type ListMembership struct {
	ListID      int    `json:"listId"`
	ListName    string `json:"listName"`
	SluggedName string `json:"sluggedName"`
	GameExists  bool   `json:"gameExists"`
}

// AddGameRequest is the POST /addGame body. Field names match the browser
// client's JSON exactly.
type AddGameRequest struct {
	ListName    string `json:"listName"`
	ListID      int    `json:"listId"`
	GameID      int    `json:"gameId"`
	Cover       string `json:"cover"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Platforms   string `json:"platforms"`
	SluggedName string `json:"sluggedName"`
}

// RemoveGameRequest is the DELETE /removeGame body.
type RemoveGameRequest struct {
	ListName string `json:"listName"`
	ListID   int    `json:"listId"`
	GameID   int    `json:"gameId"`
}

// PinGameRequest is the PUT /pinGame body.
type PinGameRequest struct {
	ListName string `json:"listName"`
	ListID   int    `json:"listId"`
	EntryID  int    `json:"entryId"`
	PinState bool   `json:"pinState"`
}

// RenameListRequest is the PUT /updateListName body. ListID arrives as a
// string because the browser client sends the route param through unchanged.
type RenameListRequest struct {
	ListName string `json:"listName"`
	ListID   string `json:"listId"`
	NewName  string `json:"newName"`
}
