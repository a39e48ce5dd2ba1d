package lists

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"gameshelf/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewStore(db), mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateListInsertsMetadataWithSlugAndZeroCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lists")).
		WithArgs("Favorites", "favorites").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.CreateList(context.Background(), "Favorites"); err != nil {
		t.Fatalf("create list: %v", err)
	}
	expectMet(t, mock)
}

func TestCreateListRejectsUnsluggableName(t *testing.T) {
	store, _ := newMockStore(t)

	if err := store.CreateList(context.Background(), "!!!"); err == nil {
		t.Fatal("expected error for name with empty slug")
	}
}

func TestListAllFillsPinnedCoverSlots(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT list_id, list_name, slugged_name, game_count").
		WillReturnRows(sqlmock.NewRows(
			[]string{"list_id", "list_name", "slugged_name", "game_count"}).
			AddRow(1, "Favorites", "favorites", 3))

	mock.ExpectQuery("FROM list_entries").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"cover_art"}).
			AddRow("ab12").AddRow("cd34").AddRow("ef56"))

	lists, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(lists) != 1 {
		t.Fatalf("expected 1 list, got %d", len(lists))
	}
	got := lists[0]
	if got.ListName != "Favorites" || got.GameCount != 3 {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if got.PinnedGameURL1 != "ab12" || got.PinnedGameURL2 != "cd34" || got.PinnedGameURL3 != "ef56" {
		t.Fatalf("unexpected cover slots: %+v", got)
	}
	if got.PinnedGameURL4 != "" {
		t.Fatalf("expected empty fourth slot, got %q", got.PinnedGameURL4)
	}
	expectMet(t, mock)
}

func TestListAllPropagatesCoverQueryFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT list_id, list_name, slugged_name, game_count").
		WillReturnRows(sqlmock.NewRows(
			[]string{"list_id", "list_name", "slugged_name", "game_count"}).
			AddRow(1, "Favorites", "favorites", 0).
			AddRow(2, "Backlog", "backlog", 0))

	mock.ExpectQuery("FROM list_entries").
		WithArgs(1).
		WillReturnError(errors.New("broken list"))

	// One bad list fails the whole call, not just that list.
	if _, err := store.ListAll(context.Background()); err == nil {
		t.Fatal("expected failure to propagate")
	}
	expectMet(t, mock)
}

func TestGetListNameMissingListIsEmptyNotError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT list_name FROM lists").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"list_name"}))

	name, err := store.GetListName(context.Background(), 99)
	if err != nil {
		t.Fatalf("get list name: %v", err)
	}
	if name != "" {
		t.Fatalf("expected empty name, got %q", name)
	}
	expectMet(t, mock)
}

func TestGetEntriesOrdersPinnedFirstByPinTime(t *testing.T) {
	store, mock := newMockStore(t)

	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	// The ordering lives in the SQL; the expectation pins the clause shape.
	mock.ExpectQuery(regexp.QuoteMeta(
		"ORDER BY is_pinned DESC, CASE WHEN is_pinned THEN date_pinned ELSE NULL END ASC, entry_id ASC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"entry_id", "game_id", "cover_art", "game_name", "year", "platforms", "is_pinned", "date_pinned", "slugged_name"}).
			AddRow(2, 42, "aa11", "Chrono Trigger", "1995", "SNES", true, t1, "chrono_trigger").
			AddRow(3, 7, "bb22", "Outer Wilds", "2019", "PC", true, t2, "outer_wilds").
			AddRow(1, 13, "cc33", "Hades", "2020", "PC, Switch", false, nil, "hades"))

	entries, err := store.GetEntries(context.Background(), 1)
	if err != nil {
		t.Fatalf("get entries: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].EntryID != 2 || entries[1].EntryID != 3 || entries[2].EntryID != 1 {
		t.Fatalf("unexpected order: %d, %d, %d", entries[0].EntryID, entries[1].EntryID, entries[2].EntryID)
	}
	if !entries[0].IsPinned || entries[2].IsPinned {
		t.Fatalf("unexpected pin states: %+v", entries)
	}
	if entries[2].DatePinned != nil {
		t.Fatalf("expected nil pin time on unpinned entry, got %v", entries[2].DatePinned)
	}
	expectMet(t, mock)
}

func TestAddGameInsertsAndIncrementsInOneTransaction(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO list_entries")).
		WithArgs(1, 42, "abcd12", "Chrono Trigger", "1995", "SNES", "chrono_trigger").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("game_count = game_count + 1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry := models.ListEntry{
		GameID:      42,
		CoverArt:    "abcd12",
		GameName:    "Chrono Trigger",
		Year:        "1995",
		Platforms:   "SNES",
		SluggedName: "chrono_trigger",
	}
	if err := store.AddGame(context.Background(), 1, entry); err != nil {
		t.Fatalf("add game: %v", err)
	}
	expectMet(t, mock)
}

// Adding the same game twice is allowed and counted twice; the store enforces
// no uniqueness. This pins down existing behavior, it is not an endorsement.
func TestAddGameTwiceDuplicatesRowAndCount(t *testing.T) {
	store, mock := newMockStore(t)

	entry := models.ListEntry{GameID: 42, GameName: "Chrono Trigger", Year: "1995"}

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO list_entries")).
			WithArgs(1, 42, "", "Chrono Trigger", "1995", "", "").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectExec(regexp.QuoteMeta("game_count = game_count + 1")).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	if err := store.AddGame(context.Background(), 1, entry); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := store.AddGame(context.Background(), 1, entry); err != nil {
		t.Fatalf("second add: %v", err)
	}
	expectMet(t, mock)
}

func TestRemoveGameDeletesAllCopiesButDecrementsOnce(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	// Two duplicate rows go away in one call...
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM list_entries WHERE list_id = ? AND game_id = ?")).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// ...but the cached count only moves by one. Longstanding drift, kept.
	mock.ExpectExec(regexp.QuoteMeta("game_count = game_count - 1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.RemoveGame(context.Background(), 1, 42); err != nil {
		t.Fatalf("remove game: %v", err)
	}
	expectMet(t, mock)
}

func TestRemoveGameRollsBackWhenDecrementFails(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM list_entries")).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("game_count = game_count - 1")).
		WithArgs(1).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	if err := store.RemoveGame(context.Background(), 1, 42); err == nil {
		t.Fatal("expected error")
	}
	expectMet(t, mock)
}

func TestRenameListUpdatesNameAndSlugTogether(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE lists SET list_name = ?, slugged_name = ?")).
		WithArgs("Now Playing", "now_playing", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.RenameList(context.Background(), 1, "Now Playing"); err != nil {
		t.Fatalf("rename list: %v", err)
	}
	expectMet(t, mock)
}

func TestPinGameStampsTimestampOnPinAndUnpin(t *testing.T) {
	store, mock := newMockStore(t)

	// The timestamp is stamped even when unpinning
	for _, pinned := range []bool{true, false} {
		mock.ExpectExec(regexp.QuoteMeta("SET is_pinned = ?, date_pinned = NOW()")).
			WithArgs(pinned, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.PinGame(context.Background(), 5, pinned); err != nil {
			t.Fatalf("pin game (%v): %v", pinned, err)
		}
	}
	expectMet(t, mock)
}

func TestDeleteListRemovesEntriesAndMetadataTogether(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM list_entries WHERE list_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lists WHERE list_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.DeleteList(context.Background(), 1); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteListRollsBackWhenMetadataDeleteFails(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM list_entries WHERE list_id = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lists WHERE list_id = ?")).
		WithArgs(1).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	// The entries delete never becomes visible, so no orphaned state survives
	// a mid-sequence failure.
	if err := store.DeleteList(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	expectMet(t, mock)
}

func TestListNamesWithMembershipChecksEveryList(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT list_id, list_name, slugged_name").
		WillReturnRows(sqlmock.NewRows([]string{"list_id", "list_name", "slugged_name"}).
			AddRow(1, "Favorites", "favorites").
			AddRow(2, "Backlog", "backlog"))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(2, 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	memberships, err := store.ListNamesWithMembership(context.Background(), 42)
	if err != nil {
		t.Fatalf("list names with membership: %v", err)
	}

	if len(memberships) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(memberships))
	}
	if !memberships[0].GameExists || memberships[1].GameExists {
		t.Fatalf("unexpected membership flags: %+v", memberships)
	}
	if memberships[1].SluggedName != "backlog" {
		t.Fatalf("unexpected slug: %q", memberships[1].SluggedName)
	}
	expectMet(t, mock)
}
