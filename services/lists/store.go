package lists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gameshelf/models"
	"gameshelf/utils"
)

// entryOrdering floats pinned entries to the top in the order they were
// pinned; unpinned entries keep insertion order. Pin timestamps on unpinned
// rows are ignored so that unpinning returns an entry to its original slot.
const entryOrdering = `ORDER BY is_pinned DESC, CASE WHEN is_pinned THEN date_pinned ELSE NULL END ASC, entry_id ASC`

// Store owns all list metadata and list entry persistence. It is constructed
// once at startup with the shared connection pool and handed to the API layer.
type Store struct {
	db *sql.DB
}

// NewStore creates a list store backed by the given connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListAll returns every list's metadata. For each list the four pinned game
// URL slots are filled from the list's entries using the pin ordering, so the
// list card shows pinned covers first and falls back to the earliest entries.
func (s *Store) ListAll(ctx context.Context) ([]models.ListMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT list_id, list_name, slugged_name, game_count
		FROM lists
		ORDER BY list_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	lists := []models.ListMetadata{}
	for rows.Next() {
		var list models.ListMetadata
		if err := rows.Scan(&list.ListID, &list.ListName, &list.SluggedName, &list.GameCount); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lists: %w", err)
	}

	for i := range lists {
		covers, err := s.topCovers(ctx, lists[i].ListID)
		if err != nil {
			return nil, err
		}

		slots := []*string{
			&lists[i].PinnedGameURL1,
			&lists[i].PinnedGameURL2,
			&lists[i].PinnedGameURL3,
			&lists[i].PinnedGameURL4,
		}
		for j, cover := range covers {
			*slots[j] = cover
		}
	}

	return lists, nil
}

// topCovers returns up to four cover ids for a list, pinned entries first.
func (s *Store) topCovers(ctx context.Context, listID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(cover_art, '')
		FROM list_entries
		WHERE list_id = ?
		`+entryOrdering+`
		LIMIT 4`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query covers for list %d: %w", listID, err)
	}
	defer rows.Close()

	var covers []string
	for rows.Next() {
		var cover string
		if err := rows.Scan(&cover); err != nil {
			return nil, fmt.Errorf("failed to scan cover: %w", err)
		}
		covers = append(covers, cover)
	}
	return covers, rows.Err()
}

// GetListName returns the display name of a single list, or the empty string
// if the list does not exist. Absence is not an error; callers render it as
// "not found".
func (s *Store) GetListName(ctx context.Context, listID int) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT list_name FROM lists WHERE list_id = ?`, listID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get list name: %w", err)
	}
	return name, nil
}

// ListNamesWithMembership returns every list together with whether the given
// game is already in it. One existence check per list; fine at personal-list
// scale.
func (s *Store) ListNamesWithMembership(ctx context.Context, gameID int) ([]models.ListMembership, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT list_id, list_name, slugged_name
		FROM lists
		ORDER BY list_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	memberships := []models.ListMembership{}
	for rows.Next() {
		var m models.ListMembership
		if err := rows.Scan(&m.ListID, &m.ListName, &m.SluggedName); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lists: %w", err)
	}

	for i := range memberships {
		var exists bool
		err := s.db.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM list_entries WHERE list_id = ? AND game_id = ?
			)`, memberships[i].ListID, gameID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership for list %d: %w", memberships[i].ListID, err)
		}
		memberships[i].GameExists = exists
	}

	return memberships, nil
}

// GetEntries returns all entries for one list, pinned entries first in pin
// order, then the rest in insertion order.
func (s *Store) GetEntries(ctx context.Context, listID int) ([]models.ListEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, game_id, COALESCE(cover_art, ''), game_name,
		       COALESCE(year, ''), COALESCE(platforms, ''), is_pinned,
		       date_pinned, COALESCE(slugged_name, '')
		FROM list_entries
		WHERE list_id = ?
		`+entryOrdering, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.ListEntry{}
	for rows.Next() {
		var e models.ListEntry
		if err := rows.Scan(&e.EntryID, &e.GameID, &e.CoverArt, &e.GameName,
			&e.Year, &e.Platforms, &e.IsPinned, &e.DatePinned, &e.SluggedName); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateList inserts a new list with a derived slug and zeroed counters.
func (s *Store) CreateList(ctx context.Context, name string) error {
	slug := utils.Slugify(name)
	if slug == "" {
		return fmt.Errorf("list name %q produces an empty slug", name)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (list_name, slugged_name, game_count,
		                   pinned_game_url_1, pinned_game_url_2,
		                   pinned_game_url_3, pinned_game_url_4)
		VALUES (?, ?, 0, '', '', '', '')`, name, slug)
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// RenameList updates a list's display name and re-derives its slug.
func (s *Store) RenameList(ctx context.Context, listID int, newName string) error {
	slug := utils.Slugify(newName)
	if slug == "" {
		return fmt.Errorf("list name %q produces an empty slug", newName)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE lists SET list_name = ?, slugged_name = ? WHERE list_id = ?`,
		newName, slug, listID)
	if err != nil {
		return fmt.Errorf("failed to rename list: %w", err)
	}
	return nil
}

// AddGame inserts one entry and bumps the list's cached game count in a
// single transaction. Adding the same game twice creates a second row; no
// uniqueness is enforced, the picker UI is expected to check first.
func (s *Store) AddGame(ctx context.Context, listID int, entry models.ListEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO list_entries (list_id, game_id, cover_art, game_name,
		                          year, platforms, is_pinned, slugged_name)
		VALUES (?, ?, ?, ?, ?, ?, FALSE, ?)`,
		listID, entry.GameID, entry.CoverArt, entry.GameName,
		entry.Year, entry.Platforms, entry.SluggedName)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE lists SET game_count = game_count + 1 WHERE list_id = ?`, listID)
	if err != nil {
		return fmt.Errorf("failed to increment game count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit add game: %w", err)
	}
	return nil
}

// RemoveGame deletes every entry matching the game id and decrements the
// cached count by exactly one, in a single transaction. When duplicate rows
// exist the count drifts; that matches the original behavior and is left as
// is.
func (s *Store) RemoveGame(ctx context.Context, listID, gameID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM list_entries WHERE list_id = ? AND game_id = ?`, listID, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE lists SET game_count = game_count - 1 WHERE list_id = ?`, listID)
	if err != nil {
		return fmt.Errorf("failed to decrement game count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit remove game: %w", err)
	}
	return nil
}

// PinGame sets the pin state of one entry. The pin timestamp is stamped on
// every call, including unpins; GetEntries ignores it for unpinned rows.
func (s *Store) PinGame(ctx context.Context, entryID int, pinned bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE list_entries SET is_pinned = ?, date_pinned = NOW()
		WHERE entry_id = ?`, pinned, entryID)
	if err != nil {
		return fmt.Errorf("failed to update pin state: %w", err)
	}
	return nil
}

// DeleteList removes a list's entries and its metadata row together.
func (s *Store) DeleteList(ctx context.Context, listID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM list_entries WHERE list_id = ?`, listID)
	if err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM lists WHERE list_id = ?`, listID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete list: %w", err)
	}
	return nil
}
