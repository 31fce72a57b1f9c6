package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/memedeck/internal/app/system/czartoken"
	"github.com/dalemusser/memedeck/internal/app/system/deck"
	"github.com/dalemusser/memedeck/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateRoom inserts a room with the given czar and deck, plus its
// credential record, and returns both. The czar starts with an empty hand,
// matching what room creation produces.
func (f *Fixtures) CreateRoom(ctx context.Context, czarID, czarName string, deckTexts []string) (models.Room, models.CzarCredential) {
	f.t.Helper()

	now := time.Now().UTC()
	room := models.Room{
		ID:             primitive.NewObjectID(),
		Title:          czarName + "'s room",
		TitleCI:        text.Fold(czarName + "'s room"),
		JoinCode:       randomJoinCode(),
		CzarUserID:     czarID,
		PromptImageURL: "https://img.example/prompt.jpg",
		Deck:           deck.New(deckTexts),
		Members: []models.Member{
			{UserID: czarID, DisplayName: czarName, Score: 0, Hand: []string{}},
		},
		SelectedCaptions: []models.SelectedCaption{},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("rooms").InsertOne(ctx, room); err != nil {
		f.t.Fatalf("failed to create test room: %v", err)
	}

	cred := models.CzarCredential{
		ID:         primitive.NewObjectID(),
		RoomID:     room.ID,
		CzarUserID: czarID,
		Token:      czartoken.Issue(),
		IssuedAt:   now,
	}
	if _, err := f.db.Collection("czar_credentials").InsertOne(ctx, cred); err != nil {
		f.t.Fatalf("failed to create test credential: %v", err)
	}

	return room, cred
}

// AddMember appends a member with the given hand directly to a stored room
// and returns the updated document.
func (f *Fixtures) AddMember(ctx context.Context, roomID primitive.ObjectID, userID, displayName string, hand []string) models.Room {
	f.t.Helper()

	member := models.Member{UserID: userID, DisplayName: displayName, Score: 0, Hand: hand}

	_, err := f.db.Collection("rooms").UpdateByID(ctx, roomID, bson.M{
		"$push": bson.M{"members": member},
		"$inc":  bson.M{"version": 1},
	})
	if err != nil {
		f.t.Fatalf("failed to add test member: %v", err)
	}

	var room models.Room
	if err := f.db.Collection("rooms").FindOne(ctx, bson.M{"_id": roomID}).Decode(&room); err != nil {
		f.t.Fatalf("failed to reload test room: %v", err)
	}
	return room
}

// randomJoinCode produces fixture codes in the real alternating-case format
// but from random bytes, so fixtures never trip the unique index.
func randomJoinCode() string {
	u := uuid.New()
	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		c := byte('a') + u[i]%26
		if i%2 == 1 {
			c -= 'a' - 'A'
		}
		code[i] = c
	}
	return string(code)
}
