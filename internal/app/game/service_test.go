package game_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/memedeck/internal/app/game"
	"github.com/dalemusser/memedeck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*game.Service, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := game.NewService(db, testutil.StubPromptFetcher{URL: "https://img.example/p.jpg"}, zap.NewNop())
	return svc, testutil.NewFixtures(t, db)
}

func TestService_CreateRoom(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, cred, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if room.CzarUserID != "c1" {
		t.Errorf("czar = %q, want c1", room.CzarUserID)
	}
	if len(room.Members) != 1 || room.Members[0].UserID != "c1" {
		t.Errorf("members = %+v, want just the czar", room.Members)
	}
	if room.Title != "Alice's room" {
		t.Errorf("default title = %q", room.Title)
	}
	if len(room.JoinCode) != 6 {
		t.Errorf("join code = %q", room.JoinCode)
	}
	if room.PromptImageURL != "https://img.example/p.jpg" {
		t.Errorf("prompt url = %q", room.PromptImageURL)
	}
	if room.DeckRemaining() != len(game.DefaultCaptions()) {
		t.Errorf("deck remaining = %d, want full default deck", room.DeckRemaining())
	}
	if cred.RoomID != room.ID || cred.CzarUserID != "c1" {
		t.Errorf("credential = %+v not bound to room/czar", cred)
	}
	if len(cred.Token) != 64 {
		t.Errorf("token length = %d, want 64", len(cred.Token))
	}
}

func TestService_CreateRoom_PromptFailureIsFailClosed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := game.NewService(db, testutil.StubPromptFetcher{Err: errors.New("api down")}, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if !errors.Is(err, game.ErrPromptUnavailable) {
		t.Fatalf("err = %v, want ErrPromptUnavailable", err)
	}

	rooms, err := svc.ListRooms(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 0 {
		t.Errorf("%d rooms persisted despite provider failure", len(rooms))
	}
}

func TestService_CreateRoom_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, _, err := svc.CreateRoom(ctx, "", "Alice", ""); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("missing czarId: err = %v, want ErrInvalidInput", err)
	}
	if _, _, err := svc.CreateRoom(ctx, "c1", "", ""); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("missing czarName: err = %v, want ErrInvalidInput", err)
	}
}

// The canonical round: create with czar Alice, Bob joins with five cards,
// Bob submits, Alice scores it.
func TestService_FullRound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, cred, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}
	roomID := room.ID.Hex()

	room, err = svc.JoinRoom(ctx, roomID, "m1", "Bob")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	bob := room.MemberByID("m1")
	if bob == nil || len(bob.Hand) != 5 {
		t.Fatalf("Bob's hand = %+v, want 5 cards", bob)
	}

	card := bob.Hand[0]
	room, err = svc.SubmitCaption(ctx, roomID, "m1", card)
	if err != nil {
		t.Fatalf("SubmitCaption failed: %v", err)
	}
	if len(room.SelectedCaptions) != 1 {
		t.Fatalf("selected captions = %d, want 1", len(room.SelectedCaptions))
	}

	room, err = svc.ScoreCaption(ctx, roomID, "c1", cred.Token, room.SelectedCaptions[0].ID.Hex())
	if err != nil {
		t.Fatalf("ScoreCaption failed: %v", err)
	}

	bob = room.MemberByID("m1")
	if bob.Score != 1 {
		t.Errorf("Bob's score = %d, want 1", bob.Score)
	}
	if len(room.SelectedCaptions) != 0 {
		t.Errorf("selected captions = %d, want 0", len(room.SelectedCaptions))
	}
	if len(bob.Hand) != 4 {
		t.Errorf("Bob's hand = %d, want 4", len(bob.Hand))
	}
}

func TestService_ClearCaptions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, cred, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}
	roomID := room.ID.Hex()
	room, err = svc.JoinRoom(ctx, roomID, "m1", "Bob")
	if err != nil {
		t.Fatal(err)
	}
	card := room.MemberByID("m1").Hand[0]
	if _, err := svc.SubmitCaption(ctx, roomID, "m1", card); err != nil {
		t.Fatal(err)
	}

	// A wrong token must not touch the round.
	_, err = svc.ClearCaptions(ctx, roomID, "c1", strings.Repeat("0", 64))
	if !errors.Is(err, game.ErrUnauthorized) {
		t.Fatalf("bad token: err = %v, want ErrUnauthorized", err)
	}
	got, err := svc.GetRoom(ctx, roomID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.SelectedCaptions) != 1 {
		t.Fatalf("round changed by unauthorized clear: %d captions", len(got.SelectedCaptions))
	}

	// The czar abandons the round: submissions drain, nobody scores.
	room, err = svc.ClearCaptions(ctx, roomID, "c1", cred.Token)
	if err != nil {
		t.Fatalf("ClearCaptions failed: %v", err)
	}
	if len(room.SelectedCaptions) != 0 {
		t.Errorf("selected captions = %d after clear, want 0", len(room.SelectedCaptions))
	}
	for _, m := range room.Members {
		if m.Score != 0 {
			t.Errorf("member %s score = %d after clear, want 0", m.UserID, m.Score)
		}
	}
	if bob := room.MemberByID("m1"); len(bob.Hand) != 4 {
		t.Errorf("Bob's hand = %d after clear, want 4 (played card stays gone)", len(bob.Hand))
	}
}

func TestService_ScoreCaption_BadToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, _, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.ScoreCaption(ctx, room.ID.Hex(), "c1", strings.Repeat("0", 64), "000000000000000000000000")
	if !errors.Is(err, game.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestService_ScoreCaption_StaleTokenAfterRotation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, cred, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}
	roomID := room.ID.Hex()
	if _, err := svc.JoinRoom(ctx, roomID, "m1", "Bob"); err != nil {
		t.Fatal(err)
	}

	_, newCred, err := svc.RotateCzar(ctx, roomID)
	if err != nil {
		t.Fatalf("RotateCzar failed: %v", err)
	}
	if newCred.Token == cred.Token {
		t.Fatal("rotation did not reissue the token")
	}

	// Alice's old token is dead, and she is no longer czar anyway.
	_, err = svc.ScoreCaption(ctx, roomID, "c1", cred.Token, "000000000000000000000000")
	if !errors.Is(err, game.ErrUnauthorized) {
		t.Errorf("stale token: err = %v, want ErrUnauthorized", err)
	}
}

func TestService_ScoreCaption_CredentialOutOfSync(t *testing.T) {
	svc, fixtures := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, cred, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}
	roomID := room.ID.Hex()
	room, err = svc.JoinRoom(ctx, roomID, "m1", "Bob")
	if err != nil {
		t.Fatal(err)
	}
	card := room.MemberByID("m1").Hand[0]
	room, err = svc.SubmitCaption(ctx, roomID, "m1", card)
	if err != nil {
		t.Fatal(err)
	}
	capID := room.SelectedCaptions[0].ID.Hex()

	// Point the credential at a user the room does not recognize as czar,
	// bypassing the paired-write path. The room itself never moves, so this
	// must surface as a consistency fault rather than a retryable conflict.
	_, err = fixtures.DB().Collection("czar_credentials").UpdateOne(ctx,
		bson.M{"room_id": room.ID},
		bson.M{"$set": bson.M{"czar_user_id": "ghost"}})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.ScoreCaption(ctx, roomID, "ghost", cred.Token, capID)
	if !errors.Is(err, game.ErrCzarConfigMissing) {
		t.Fatalf("err = %v, want ErrCzarConfigMissing", err)
	}

	got, err := svc.GetRoom(ctx, roomID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.SelectedCaptions) != 1 {
		t.Errorf("round drained despite consistency fault: %d captions", len(got.SelectedCaptions))
	}
}

func TestService_RotateCzar_CyclesAndReissues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, cred, err := svc.CreateRoom(ctx, "u0", "Zero", "")
	if err != nil {
		t.Fatal(err)
	}
	roomID := room.ID.Hex()
	if _, err := svc.JoinRoom(ctx, roomID, "u1", "One"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.JoinRoom(ctx, roomID, "u2", "Two"); err != nil {
		t.Fatal(err)
	}

	tokens := map[string]bool{cred.Token: true}
	want := []string{"u1", "u2", "u0"}
	for i, w := range want {
		var err error
		room, cred, err = svc.RotateCzar(ctx, roomID)
		if err != nil {
			t.Fatalf("rotation %d failed: %v", i+1, err)
		}
		if room.CzarUserID != w {
			t.Fatalf("rotation %d: czar = %q, want %q", i+1, room.CzarUserID, w)
		}
		if cred.CzarUserID != w {
			t.Fatalf("rotation %d: credential czar = %q out of sync", i+1, cred.CzarUserID)
		}
		if tokens[cred.Token] {
			t.Fatalf("rotation %d reused an earlier token", i+1)
		}
		tokens[cred.Token] = true
	}
}

func TestService_RotateCzar_MissingCredential(t *testing.T) {
	svc, fixtures := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, _ := fixtures.CreateRoom(ctx, "c1", "Alice", []string{"a", "b"})
	if _, err := fixtures.DB().Collection("czar_credentials").DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatal(err)
	}

	_, _, err := svc.RotateCzar(ctx, room.ID.Hex())
	if !errors.Is(err, game.ErrCzarConfigMissing) {
		t.Errorf("err = %v, want ErrCzarConfigMissing", err)
	}
}

func TestService_RemoveMember_CzarForbidden(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, _, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.RemoveMember(ctx, room.ID.Hex(), "c1")
	if !errors.Is(err, game.ErrCzarRemovalForbidden) {
		t.Fatalf("err = %v, want ErrCzarRemovalForbidden", err)
	}

	got, err := svc.GetRoom(ctx, room.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Members) != 1 {
		t.Errorf("roster changed on forbidden removal: %+v", got.Members)
	}
}

func TestService_RefreshPrompt_FailClosed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	okSvc := game.NewService(db, testutil.StubPromptFetcher{URL: "https://img.example/first.jpg"}, zap.NewNop())
	room, _, err := okSvc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}

	downSvc := game.NewService(db, testutil.StubPromptFetcher{Err: errors.New("api down")}, zap.NewNop())
	_, err = downSvc.RefreshPrompt(ctx, room.ID.Hex())
	if !errors.Is(err, game.ErrPromptUnavailable) {
		t.Fatalf("err = %v, want ErrPromptUnavailable", err)
	}

	got, err := okSvc.GetRoom(ctx, room.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got.PromptImageURL != "https://img.example/first.jpg" {
		t.Errorf("prompt changed despite provider failure: %q", got.PromptImageURL)
	}
}

func TestService_DeleteRoom_RemovesCredential(t *testing.T) {
	svc, fixtures := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, _, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteRoom(ctx, room.ID.Hex()); err != nil {
		t.Fatalf("DeleteRoom failed: %v", err)
	}

	if _, err := svc.GetRoom(ctx, room.ID.Hex()); !errors.Is(err, game.ErrRoomNotFound) {
		t.Errorf("room still loadable after delete: %v", err)
	}
	n, err := fixtures.DB().Collection("czar_credentials").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d credential records left after room delete", n)
	}

	if err := svc.DeleteRoom(ctx, room.ID.Hex()); !errors.Is(err, game.ErrRoomNotFound) {
		t.Errorf("second delete: err = %v, want ErrRoomNotFound", err)
	}
}

func TestService_GetRoomByJoinCode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room, _, err := svc.CreateRoom(ctx, "c1", "Alice", "")
	if err != nil {
		t.Fatal(err)
	}

	found, err := svc.GetRoomByJoinCode(ctx, room.JoinCode)
	if err != nil {
		t.Fatalf("GetRoomByJoinCode failed: %v", err)
	}
	if found.ID != room.ID {
		t.Errorf("found %s, want %s", found.ID.Hex(), room.ID.Hex())
	}

	if _, err := svc.GetRoomByJoinCode(ctx, "zZzZzZ"); !errors.Is(err, game.ErrRoomNotFound) {
		t.Errorf("unknown code: err = %v, want ErrRoomNotFound", err)
	}
}

func TestService_UnknownRoomID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := svc.GetRoom(ctx, "not-a-hex-id"); !errors.Is(err, game.ErrRoomNotFound) {
		t.Errorf("malformed id: err = %v, want ErrRoomNotFound", err)
	}
	if _, err := svc.JoinRoom(ctx, "000000000000000000000000", "m1", "Bob"); !errors.Is(err, game.ErrRoomNotFound) {
		t.Errorf("unknown id: err = %v, want ErrRoomNotFound", err)
	}
}
