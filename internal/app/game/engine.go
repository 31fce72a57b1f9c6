// internal/app/game/engine.go
//
// Pure mutation rules for the Room aggregate. Every function here mutates an
// in-memory Room and nothing else; loading and persisting (and the czar
// credential side-table) are the Service's job. Keeping the rules free of
// I/O is what makes the round semantics directly testable.
package game

import (
	"github.com/dalemusser/memedeck/internal/app/system/deck"
	"github.com/dalemusser/memedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandSize is how many cards a joining member draws.
const HandSize = 5

// Join adds a new member with a freshly drawn hand. The hand may come up
// short when the deck is low; that is the allocator's partial-fulfillment
// contract, not a failure.
func Join(r *models.Room, userID, displayName string, rng deck.Rand) error {
	if r.MemberByID(userID) != nil {
		return ErrMemberExists
	}
	hand := deck.Draw(r.Deck, HandSize, rng)
	r.Members = append(r.Members, models.Member{
		UserID:      userID,
		DisplayName: displayName,
		Score:       0,
		Hand:        hand,
	})
	return nil
}

// DrawCards allocates count cards from the room's pool into a member's hand
// and returns what was drawn.
func DrawCards(r *models.Room, userID string, count int, rng deck.Rand) ([]string, error) {
	m := r.MemberByID(userID)
	if m == nil {
		return nil, ErrMemberNotFound
	}
	drawn := deck.Draw(r.Deck, count, rng)
	m.Hand = append(m.Hand, drawn...)
	return drawn, nil
}

// SubmitCaption plays a card from a member's hand into the current round.
// The czar judges and never submits, and a member can only play a card they
// actually hold.
func SubmitCaption(r *models.Room, userID, caption string) error {
	if userID == r.CzarUserID {
		return ErrCzarCannotSubmit
	}
	m := r.MemberByID(userID)
	if m == nil {
		return ErrMemberNotFound
	}

	idx := -1
	for i, c := range m.Hand {
		if c == caption {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCaptionNotInHand
	}

	m.Hand = append(m.Hand[:idx], m.Hand[idx+1:]...)
	r.SelectedCaptions = append(r.SelectedCaptions, models.SelectedCaption{
		ID:          primitive.NewObjectID(),
		Caption:     caption,
		OwnerUserID: userID,
	})
	return nil
}

// ScoreCaption awards the round to the submission with the given id: the
// owner's score goes up by one and the round's submissions drain. The
// self-score check should be unreachable given the submit rule, but it is
// re-checked here so a corrupted round can never award the judge.
func ScoreCaption(r *models.Room, captionID primitive.ObjectID) (winnerID string, err error) {
	var winner *models.SelectedCaption
	for i := range r.SelectedCaptions {
		if r.SelectedCaptions[i].ID == captionID {
			winner = &r.SelectedCaptions[i]
			break
		}
	}
	if winner == nil {
		return "", ErrCaptionNotFound
	}
	if winner.OwnerUserID == r.CzarUserID {
		return "", ErrSelfScoreForbidden
	}

	m := r.MemberByID(winner.OwnerUserID)
	if m == nil {
		// Submitter left before judgment; nothing to award.
		return "", ErrMemberNotFound
	}

	m.Score++
	r.SelectedCaptions = nil
	return m.UserID, nil
}

// ClearCaptions abandons the current round without awarding a point.
func ClearCaptions(r *models.Room) {
	r.SelectedCaptions = nil
}

// NextCzar returns the member who succeeds the current czar: the next member
// in roster order, wrapping to the first. The result is deterministic for a
// given roster, which is what lets N rotations on N members come back around
// to the original czar.
func NextCzar(r *models.Room) (string, error) {
	if len(r.Members) == 0 {
		return "", ErrCzarConfigMissing
	}
	for i := range r.Members {
		if r.Members[i].UserID == r.CzarUserID {
			return r.Members[(i+1)%len(r.Members)].UserID, nil
		}
	}
	// The czar must always be a member; a roster without them is corrupt.
	return "", ErrCzarConfigMissing
}

// RemoveMember drops a member from the roster. The czar cannot be removed
// while holding the role. The leaver's hand is discarded, never returned to
// the deck.
func RemoveMember(r *models.Room, userID string) error {
	if userID == r.CzarUserID {
		return ErrCzarRemovalForbidden
	}
	for i := range r.Members {
		if r.Members[i].UserID == userID {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}
