// internal/app/features/rooms/types.go
package rooms

import (
	"time"

	"github.com/dalemusser/memedeck/internal/domain/models"
)

// createRequest is the body for POST /rooms.
type createRequest struct {
	CzarID   string `json:"czarId"`
	CzarName string `json:"czarName"`
	Title    string `json:"title"`
}

// joinRequest is the body for POST /rooms/{roomID}/members.
type joinRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// submitRequest is the body for POST /rooms/{roomID}/captions.
type submitRequest struct {
	UserID  string `json:"userId"`
	Caption string `json:"caption"`
}

// scoreRequest is the body for POST /rooms/{roomID}/score. The credential
// itself travels in the X-Czar-Token header, never in the body.
type scoreRequest struct {
	CzarID    string `json:"czarId"`
	CaptionID string `json:"captionId"`
}

// roomView is the public shape of a room. The deck contents stay server-side;
// clients only learn how many cards are left.
type roomView struct {
	ID               string                   `json:"id"`
	Title            string                   `json:"title"`
	JoinCode         string                   `json:"joinCode"`
	CzarUserID       string                   `json:"czarUserId"`
	PromptImageURL   string                   `json:"promptImageUrl"`
	Members          []models.Member          `json:"members"`
	SelectedCaptions []models.SelectedCaption `json:"selectedCaptions"`
	DeckRemaining    int                      `json:"deckRemaining"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// credentialView is returned from room creation and czar rotation. It is the
// only place the scoring token ever appears in a response.
type credentialView struct {
	Room      roomView  `json:"room"`
	CzarToken string    `json:"czarToken"`
	IssuedAt  time.Time `json:"issuedAt"`
}

func viewOf(room models.Room) roomView {
	members := room.Members
	if members == nil {
		members = []models.Member{}
	}
	captions := room.SelectedCaptions
	if captions == nil {
		captions = []models.SelectedCaption{}
	}
	return roomView{
		ID:               room.ID.Hex(),
		Title:            room.Title,
		JoinCode:         room.JoinCode,
		CzarUserID:       room.CzarUserID,
		PromptImageURL:   room.PromptImageURL,
		Members:          members,
		SelectedCaptions: captions,
		DeckRemaining:    room.DeckRemaining(),
		CreatedAt:        room.CreatedAt,
		UpdatedAt:        room.UpdatedAt,
	}
}
