// internal/domain/models/room.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room is the aggregate root for a single game. The whole room lives in one
// document so every mutation is a single atomic replace; Version guards
// concurrent read-modify-write cycles against the same room.
type Room struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Title            string             `bson:"title" json:"title"`
	TitleCI          string             `bson:"title_ci" json:"-"` // ← always stored
	JoinCode         string             `bson:"join_code" json:"joinCode"`
	CzarUserID       string             `bson:"czar_user_id" json:"czarUserId"`
	PromptImageURL   string             `bson:"prompt_image_url" json:"promptImageUrl"`
	Deck             []Card             `bson:"deck" json:"-"`
	Members          []Member           `bson:"members" json:"members"`
	SelectedCaptions []SelectedCaption  `bson:"selected_captions" json:"selectedCaptions"`
	Version          int64              `bson:"version" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Card is one slot in a room's shared caption pool. Drawn slots stay in the
// array as tombstones; the deck only ever shrinks in logical count.
type Card struct {
	Text  string `bson:"text" json:"text"`
	Drawn bool   `bson:"drawn" json:"drawn"`
}

// Member is owned exclusively by its Room. UserID is the caller-supplied
// external identity (an auth-provider id) and is unique within the room.
type Member struct {
	UserID      string   `bson:"user_id" json:"userId"`
	DisplayName string   `bson:"display_name" json:"displayName"`
	Score       int      `bson:"score" json:"score"`
	Hand        []string `bson:"hand" json:"hand"`
}

// SelectedCaption is one submission in the current round. ID is what the
// czar references when scoring a winner.
type SelectedCaption struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Caption     string             `bson:"caption" json:"caption"`
	OwnerUserID string             `bson:"owner_user_id" json:"ownerUserId"`
}

// MemberByID returns a pointer into Members for the given user id, or nil.
func (r *Room) MemberByID(userID string) *Member {
	for i := range r.Members {
		if r.Members[i].UserID == userID {
			return &r.Members[i]
		}
	}
	return nil
}

// DeckRemaining counts the live (undrawn) slots left in the room's pool.
func (r *Room) DeckRemaining() int {
	n := 0
	for i := range r.Deck {
		if !r.Deck[i].Drawn {
			n++
		}
	}
	return n
}
