package roomstore_test

import (
	"testing"

	roomstore "github.com/dalemusser/memedeck/internal/app/store/rooms"
	"github.com/dalemusser/memedeck/internal/app/system/deck"
	"github.com/dalemusser/memedeck/internal/domain/models"
	"github.com/dalemusser/memedeck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testRoom(code string) models.Room {
	return models.Room{
		Title:      "Friday Night Memes",
		JoinCode:   code,
		CzarUserID: "c1",
		Deck:       deck.New([]string{"one", "two", "three"}),
		Members: []models.Member{
			{UserID: "c1", DisplayName: "Alice", Hand: []string{}},
		},
		SelectedCaptions: []models.SelectedCaption{},
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("aBcDeF"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Version != 1 {
		t.Errorf("version = %d, want 1", created.Version)
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateJoinCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, testRoom("aBcDeF")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, testRoom("aBcDeF")); err != roomstore.ErrDuplicateJoinCode {
		t.Errorf("second Create: err = %v, want ErrDuplicateJoinCode", err)
	}
}

func TestStore_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("aBcDeF"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.JoinCode != created.JoinCode {
		t.Errorf("JoinCode: got %q, want %q", found.JoinCode, created.JoinCode)
	}
	if len(found.Deck) != 3 || found.Deck[0].Text != "one" {
		t.Errorf("deck did not round-trip: %+v", found.Deck)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != roomstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetByJoinCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("xYzWvU"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByJoinCode(ctx, "xYzWvU")
	if err != nil {
		t.Fatalf("GetByJoinCode failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %s, want %s", found.ID.Hex(), created.ID.Hex())
	}

	if _, err := store.GetByJoinCode(ctx, "nOpQrS"); err != roomstore.ErrNotFound {
		t.Errorf("unknown code: err = %v, want ErrNotFound", err)
	}
}

func TestStore_Save_BumpsVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("aBcDeF"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.CzarUserID = "c2"
	saved, err := store.Save(ctx, created)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.Version != 2 {
		t.Errorf("version after save = %d, want 2", saved.Version)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.CzarUserID != "c2" {
		t.Errorf("CzarUserID = %q, want c2", found.CzarUserID)
	}
}

func TestStore_Save_StaleVersionConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("aBcDeF"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Two readers load the same version; the second save must lose.
	first := created
	second := created

	first.Title = "first writer"
	if _, err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second.Title = "second writer"
	if _, err := store.Save(ctx, second); err != roomstore.ErrConflict {
		t.Errorf("stale save: err = %v, want ErrConflict", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.Title != "first writer" {
		t.Errorf("title = %q; stale writer clobbered the document", found.Title)
	}
}

func TestStore_Save_DeletedRoom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("aBcDeF"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(ctx, created); err != roomstore.ErrNotFound {
		t.Errorf("save of deleted room: err = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, testRoom("aBcDeF")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, testRoom("gHiJkL")); err != nil {
		t.Fatal(err)
	}

	rooms, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("listed %d rooms, want 2", len(rooms))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, testRoom("aBcDeF"))
	if err != nil {
		t.Fatal(err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}

	n, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second delete removed %d documents", n)
	}
}
