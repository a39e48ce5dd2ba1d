package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	igdbAPIBaseURL = "https://api.igdb.com/v4"

	// popularWindow is the trailing window for "popular new releases".
	popularWindow = 30 * 24 * time.Hour

	// minRatingCount filters out releases nobody has rated yet.
	minRatingCount = 5
)

// Client issues Apicalypse queries against the IGDB games endpoint. It keeps
// no state between calls: no caching, no retry, no pagination tracking beyond
// the offset the caller passes in.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	clientID    string
	accessToken string

	// now and sleep are swapped out in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Image is an IGDB image reference; the image_id is expanded into a CDN URL
// by the front end.
type Image struct {
	ID      int    `json:"id"`
	ImageID string `json:"image_id"`
}

// Named is any IGDB sub-resource with just a display name (genres, themes,
// platforms, game modes and so on).
type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a game trailer or clip reference.
type Video struct {
	ID      int    `json:"id"`
	VideoID string `json:"video_id"`
}

// GameSummary is the compact projection used by the popular-new-releases
// query and the lite search.
type GameSummary struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Cover  *Image  `json:"cover,omitempty"`
	Genres []Named `json:"genres,omitempty"`
}

// SearchResult is one row of the paginated main search.
type SearchResult struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Cover            *Image  `json:"cover,omitempty"`
	FirstReleaseDate int64   `json:"first_release_date,omitempty"`
	Platforms        []Named `json:"platforms,omitempty"`
}

// TopGame is one row of the top-100 highest rated games query.
type TopGame struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Cover       *Image  `json:"cover,omitempty"`
	Rating      float64 `json:"aggregated_rating,omitempty"`
	RatingCount int     `json:"rating_count,omitempty"`
}

// UpcomingGame is one row of the coming-soon query.
type UpcomingGame struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Cover            *Image `json:"cover,omitempty"`
	FirstReleaseDate int64  `json:"first_release_date,omitempty"`
	Hypes            int    `json:"hypes,omitempty"`
}

// InvolvedCompany links a game to a company and its role.
type InvolvedCompany struct {
	ID        int   `json:"id"`
	Developer bool  `json:"developer"`
	Publisher bool  `json:"publisher"`
	Company   Named `json:"company"`
}

// LanguageSupport describes one supported language and the kind of support.
type LanguageSupport struct {
	ID                  int   `json:"id"`
	Language            Named `json:"language"`
	LanguageSupportType Named `json:"language_support_type"`
}

// AgeRating is one regional rating board classification.
type AgeRating struct {
	ID             int   `json:"id"`
	Organization   Named `json:"organization"`
	RatingCategory struct {
		ID     int    `json:"id"`
		Rating string `json:"rating"`
	} `json:"rating_category"`
}

// DLC is a downloadable-content reference shown on the detail page.
type DLC struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Cover *Image `json:"cover,omitempty"`
}

// GameDetail is the full projection backing the game detail page.
type GameDetail struct {
	ID                 int               `json:"id"`
	Name               string            `json:"name"`
	Summary            string            `json:"summary,omitempty"`
	Cover              *Image            `json:"cover,omitempty"`
	Artworks           []Image           `json:"artworks,omitempty"`
	Screenshots        []Image           `json:"screenshots,omitempty"`
	Videos             []Video           `json:"videos,omitempty"`
	FirstReleaseDate   int64             `json:"first_release_date,omitempty"`
	InvolvedCompanies  []InvolvedCompany `json:"involved_companies,omitempty"`
	Genres             []Named           `json:"genres,omitempty"`
	Themes             []Named           `json:"themes,omitempty"`
	GameModes          []Named           `json:"game_modes,omitempty"`
	PlayerPerspectives []Named           `json:"player_perspectives,omitempty"`
	GameEngines        []Named           `json:"game_engines,omitempty"`
	DLCs               []DLC             `json:"dlcs,omitempty"`
	LanguageSupports   []LanguageSupport `json:"language_supports,omitempty"`
	AgeRatings         []AgeRating       `json:"age_ratings,omitempty"`
}

// NewClient creates a new IGDB client.
func NewClient(clientID, accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     igdbAPIBaseURL,
		clientID:    clientID,
		accessToken: accessToken,
		now:         time.Now,
		sleep:       sleepContext,
	}
}

// HasCredentials checks if the client has credentials configured.
func (c *Client) HasCredentials() bool {
	return c.clientID != "" && c.accessToken != ""
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// query posts one Apicalypse body to /games and decodes the response into out.
func (c *Client) query(ctx context.Context, body string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/games", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("igdb api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("igdb query failed: %s - %s", resp.Status, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// PopularNewReleases returns up to ten games released in the trailing 30-day
// window with at least a handful of ratings, newest first. The short delay
// keeps the front end's loading spinner visible; it is purely cosmetic.
func (c *Client) PopularNewReleases(ctx context.Context) ([]GameSummary, error) {
	if err := c.sleep(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}

	currentDate := c.now().Unix()
	earliestReleaseDate := currentDate - int64(popularWindow.Seconds())

	body := fmt.Sprintf(`fields cover.image_id,name,genres.name;
where (first_release_date > %d) & (first_release_date < %d) & (rating_count >= %d);
sort first_release_date desc;
limit 10;`, earliestReleaseDate, currentDate, minRatingCount)

	var games []GameSummary
	if err := c.query(ctx, body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SearchGameLite returns up to four name-match results for the search-as-you-
// type dropdown.
func (c *Client) SearchGameLite(ctx context.Context, gameName string) ([]GameSummary, error) {
	body := fmt.Sprintf(`search "%s"; fields cover.image_id,name; limit 4;`, escapeSearchTerm(gameName))

	var games []GameSummary
	if err := c.query(ctx, body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SearchGame returns up to ten results starting at the given offset, with the
// fuller projection used by the search results page. The delay is the same
// spinner device as PopularNewReleases.
func (c *Client) SearchGame(ctx context.Context, gameName string, offset int) ([]SearchResult, error) {
	if err := c.sleep(ctx, time.Second); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(`search "%s"; fields first_release_date,cover.image_id,name,platforms.name; offset: %d; limit 10;`,
		escapeSearchTerm(gameName), offset)

	var games []SearchResult
	if err := c.query(ctx, body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GatherGameData returns the full detail projection for one game. IGDB
// answers a where-by-id query with a one-element array, which is passed
// through to the caller unchanged.
func (c *Client) GatherGameData(ctx context.Context, gameID int) ([]GameDetail, error) {
	body := fmt.Sprintf(`fields
artworks.image_id,
screenshots.image_id,
name,
videos.video_id,
cover.image_id,
first_release_date,
involved_companies.developer,
involved_companies.publisher,
involved_companies.company.name,
summary,
genres.name,
themes.name,
game_modes.name,
player_perspectives.name,
game_engines.name,
dlcs.name,
dlcs.cover.image_id,
language_supports.language.name,
language_supports.language_support_type.name,
age_ratings.organization.name,
age_ratings.rating_category.rating;
where id = %d;`, gameID)

	var games []GameDetail
	if err := c.query(ctx, body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Top100 returns the hundred highest critic-rated games with enough ratings
// to be meaningful.
func (c *Client) Top100(ctx context.Context) ([]TopGame, error) {
	body := `fields cover.image_id,name,aggregated_rating,rating_count;
where (aggregated_rating != null) & (rating_count >= 400);
sort aggregated_rating desc;
limit 100;`

	var games []TopGame
	if err := c.query(ctx, body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ComingSoon returns the ten most anticipated unreleased games.
func (c *Client) ComingSoon(ctx context.Context) ([]UpcomingGame, error) {
	currentDate := c.now().Unix()

	body := fmt.Sprintf(`fields cover.image_id,name,first_release_date,hypes;
where (first_release_date > %d) & (hypes != null);
sort hypes desc;
limit 10;`, currentDate)

	var games []UpcomingGame
	if err := c.query(ctx, body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// escapeSearchTerm keeps user input from breaking out of the quoted
// Apicalypse search string.
func escapeSearchTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `"`, `\"`)
}
