package steamcharts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const steamChartsBaseURL = "https://steamcharts.com"

// Client fetches concurrent-player numbers from the Steam Charts search page.
// Steam Charts has no API, so this is a page fetch; the front end renders the
// returned markup's figures.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Steam Charts client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    steamChartsBaseURL,
	}
}

// PlayerCount returns the raw search results page for a game name. Any
// non-2xx response or transport error is surfaced as an error; no fallback
// content is synthesized.
func (c *Client) PlayerCount(ctx context.Context, gameName string) (string, error) {
	searchURL := fmt.Sprintf("%s/search/?q=%s", c.baseURL, url.QueryEscape(gameName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("steamcharts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("steamcharts search failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return string(body), nil
}

// extractCurrentPlayers pulls the current-player figure of the first search
// result out of the page markup. The search results table rows carry a
// "game-name" cell followed by numeric cells; the first numeric cell is the
// current player count. PlayerCount proxies the page untouched, so nothing
// on the serving path calls this; its tests pin down the page shape the
// front end depends on, and walking the tree instead of slicing by byte
// position keeps that check working when the page gains attributes or
// whitespace.
func extractCurrentPlayers(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	row := findFirstResultRow(doc)
	if row == nil {
		return "", fmt.Errorf("no search results in page")
	}

	sawName := false
	for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
		if cell.Type != html.ElementNode || cell.Data != "td" {
			continue
		}
		if hasClass(cell, "game-name") {
			sawName = true
			continue
		}
		if sawName {
			count := strings.TrimSpace(textContent(cell))
			if count == "" {
				return "", fmt.Errorf("empty player count cell")
			}
			return count, nil
		}
	}

	return "", fmt.Errorf("no player count cell in result row")
}

// findFirstResultRow returns the first table row containing a game-name cell.
func findFirstResultRow(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "tr" {
		for cell := n.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type == html.ElementNode && cell.Data == "td" && hasClass(cell, "game-name") {
				return n
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if row := findFirstResultRow(child); row != nil {
			return row
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textContent(child))
	}
	return b.String()
}
