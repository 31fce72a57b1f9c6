// internal/app/game/service.go
package game

import (
	"context"
	"errors"
	"fmt"

	czarcredstore "github.com/dalemusser/memedeck/internal/app/store/czarcreds"
	roomstore "github.com/dalemusser/memedeck/internal/app/store/rooms"
	"github.com/dalemusser/memedeck/internal/app/system/czartoken"
	"github.com/dalemusser/memedeck/internal/app/system/deck"
	"github.com/dalemusser/memedeck/internal/app/system/joincode"
	"github.com/dalemusser/memedeck/internal/app/system/promptimg"
	"github.com/dalemusser/memedeck/internal/app/system/txn"
	"github.com/dalemusser/memedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// How many times CreateRoom regenerates a colliding join code before giving
// up. With 26^6 codes a second collision in a row already means something is
// wrong with the generator or the collection.
const maxJoinCodeAttempts = 5

// Service owns the load → rule → persist cycle for every room operation.
// Each operation behaves as one atomic unit: the room is loaded fresh,
// mutated in memory by an engine rule, and saved conditioned on the loaded
// version, so a racing writer surfaces as ErrConflict instead of corrupting
// shared state. Prompt fetches always happen before anything is persisted.
type Service struct {
	rooms   *roomstore.Store
	creds   *czarcredstore.Store
	prompts promptimg.Fetcher
	client  *mongo.Client
	rng     deck.Rand
	log     *zap.Logger
}

// NewService wires a Service against the given database.
func NewService(db *mongo.Database, prompts promptimg.Fetcher, logger *zap.Logger) *Service {
	return &Service{
		rooms:   roomstore.New(db),
		creds:   czarcredstore.New(db),
		prompts: prompts,
		client:  db.Client(),
		rng:     deck.NewRand(),
		log:     logger,
	}
}

// EnsureIndexes creates the indexes both collections rely on.
func (s *Service) EnsureIndexes(ctx context.Context) error {
	if err := s.rooms.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.creds.EnsureIndexes(ctx)
}

// CreateRoom starts a new game: one member (the creator, who is also the
// first czar), a full default deck, a fresh join code, a prompt image, and a
// scoring credential. The prompt is fetched before anything is written; if
// the provider is down, no room is created.
func (s *Service) CreateRoom(ctx context.Context, czarID, czarName, title string) (models.Room, models.CzarCredential, error) {
	if czarID == "" {
		return models.Room{}, models.CzarCredential{}, fmt.Errorf("%w: czarId is required", ErrInvalidInput)
	}
	if czarName == "" {
		return models.Room{}, models.CzarCredential{}, fmt.Errorf("%w: czarName is required", ErrInvalidInput)
	}
	if title == "" {
		title = czarName + "'s room"
	}

	promptURL, err := s.prompts.FetchPromptURL(ctx)
	if err != nil {
		return models.Room{}, models.CzarCredential{}, fmt.Errorf("%w: %v", ErrPromptUnavailable, err)
	}

	token := czartoken.Issue()

	var created models.Room
	var cred models.CzarCredential
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		room := models.Room{
			Title:          title,
			JoinCode:       joincode.Generate(),
			CzarUserID:     czarID,
			PromptImageURL: promptURL,
			Deck:           deck.New(DefaultCaptions()),
			Members: []models.Member{
				{UserID: czarID, DisplayName: czarName, Score: 0, Hand: []string{}},
			},
			SelectedCaptions: []models.SelectedCaption{},
		}

		err = txn.Run(ctx, s.client, s.log, func(ctx context.Context) error {
			var err error
			created, err = s.rooms.Create(ctx, room)
			if err != nil {
				return err
			}
			cred, err = s.creds.Upsert(ctx, created.ID, czarID, token)
			return err
		})
		if errors.Is(err, roomstore.ErrDuplicateJoinCode) {
			continue
		}
		if err != nil {
			// On deployments without transactions the room insert may have
			// landed before the credential write failed. Best-effort cleanup
			// so a credential-less room never becomes reachable; under a real
			// transaction the insert rolled back and this deletes nothing.
			if !created.ID.IsZero() {
				_, _ = s.rooms.Delete(ctx, created.ID)
			}
			return models.Room{}, models.CzarCredential{}, err
		}

		s.log.Info("room created",
			zap.String("room_id", created.ID.Hex()),
			zap.String("join_code", created.JoinCode),
			zap.String("czar_user_id", czarID))
		return created, cred, nil
	}
	return models.Room{}, models.CzarCredential{}, fmt.Errorf("could not allocate a unique join code after %d attempts: %w", maxJoinCodeAttempts, err)
}

// GetRoom loads a room by its id.
func (s *Service) GetRoom(ctx context.Context, roomID string) (models.Room, error) {
	oid, err := parseRoomID(roomID)
	if err != nil {
		return models.Room{}, err
	}
	room, err := s.rooms.GetByID(ctx, oid)
	if err != nil {
		return models.Room{}, mapRoomErr(err)
	}
	return room, nil
}

// GetRoomByJoinCode loads a room by the short code players type in.
func (s *Service) GetRoomByJoinCode(ctx context.Context, code string) (models.Room, error) {
	if code == "" {
		return models.Room{}, fmt.Errorf("%w: join code is required", ErrInvalidInput)
	}
	room, err := s.rooms.GetByJoinCode(ctx, code)
	if err != nil {
		return models.Room{}, mapRoomErr(err)
	}
	return room, nil
}

// ListRooms returns every room, oldest first.
func (s *Service) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms.List(ctx)
}

// JoinRoom adds a member with a freshly drawn five-card hand.
func (s *Service) JoinRoom(ctx context.Context, roomID, userID, displayName string) (models.Room, error) {
	if userID == "" {
		return models.Room{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if displayName == "" {
		return models.Room{}, fmt.Errorf("%w: displayName is required", ErrInvalidInput)
	}
	return s.mutate(ctx, roomID, func(r *models.Room) error {
		return Join(r, userID, displayName, s.rng)
	})
}

// DrawCards allocates count cards into a member's hand.
func (s *Service) DrawCards(ctx context.Context, roomID, userID string, count int) (models.Room, error) {
	if count <= 0 {
		return models.Room{}, fmt.Errorf("%w: draw count must be positive", ErrInvalidInput)
	}
	return s.mutate(ctx, roomID, func(r *models.Room) error {
		_, err := DrawCards(r, userID, count, s.rng)
		return err
	})
}

// SubmitCaption plays a card from a member's hand into the current round.
func (s *Service) SubmitCaption(ctx context.Context, roomID, userID, caption string) (models.Room, error) {
	if userID == "" {
		return models.Room{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if caption == "" {
		return models.Room{}, fmt.Errorf("%w: caption is required", ErrInvalidInput)
	}
	return s.mutate(ctx, roomID, func(r *models.Room) error {
		return SubmitCaption(r, userID, caption)
	})
}

// ScoreCaption lets the czar award the round to one submission. The caller
// must present the room's current credential; stale tokens from before a
// rotation fail Unauthorized.
func (s *Service) ScoreCaption(ctx context.Context, roomID, czarID, token, captionID string) (models.Room, error) {
	oid, err := parseRoomID(roomID)
	if err != nil {
		return models.Room{}, err
	}
	capID, err := primitive.ObjectIDFromHex(captionID)
	if err != nil {
		return models.Room{}, ErrCaptionNotFound
	}

	room, err := s.rooms.GetByID(ctx, oid)
	if err != nil {
		return models.Room{}, mapRoomErr(err)
	}
	cred, err := s.authorizeCzar(ctx, oid, czarID, token)
	if err != nil {
		return models.Room{}, err
	}

	if room.CzarUserID != cred.CzarUserID {
		// The room and credential reads are not atomic, so a rotation landing
		// between them produces this mismatch legally. Re-read the room: a
		// moved version means a race the caller can retry; an unchanged
		// version means the two records genuinely disagree.
		fresh, ferr := s.rooms.GetByID(ctx, oid)
		if ferr != nil {
			return models.Room{}, mapRoomErr(ferr)
		}
		if fresh.Version != room.Version {
			return models.Room{}, ErrConflict
		}
		s.log.Error("czar credential out of sync with room",
			zap.String("room_id", room.ID.Hex()),
			zap.String("room_czar", room.CzarUserID),
			zap.String("credential_czar", cred.CzarUserID))
		return models.Room{}, ErrCzarConfigMissing
	}

	winner, err := ScoreCaption(&room, capID)
	if err != nil {
		return models.Room{}, err
	}
	saved, err := s.rooms.Save(ctx, room)
	if err != nil {
		return models.Room{}, mapRoomErr(err)
	}

	s.log.Info("round scored",
		zap.String("room_id", room.ID.Hex()),
		zap.String("winner_user_id", winner))
	return saved, nil
}

// ClearCaptions abandons the current round without awarding a point. Like
// scoring, it is a czar-only action.
func (s *Service) ClearCaptions(ctx context.Context, roomID, czarID, token string) (models.Room, error) {
	oid, err := parseRoomID(roomID)
	if err != nil {
		return models.Room{}, err
	}
	if _, err := s.authorizeCzar(ctx, oid, czarID, token); err != nil {
		return models.Room{}, err
	}
	return s.mutate(ctx, roomID, func(r *models.Room) error {
		ClearCaptions(r)
		return nil
	})
}

// RotateCzar hands the judge role to the next member in roster order and
// reissues the scoring credential. Room and credential are written together;
// a missing credential record aborts the rotation because it means the two
// are already out of sync.
func (s *Service) RotateCzar(ctx context.Context, roomID string) (models.Room, models.CzarCredential, error) {
	oid, err := parseRoomID(roomID)
	if err != nil {
		return models.Room{}, models.CzarCredential{}, err
	}

	room, err := s.rooms.GetByID(ctx, oid)
	if err != nil {
		return models.Room{}, models.CzarCredential{}, mapRoomErr(err)
	}

	if _, err := s.creds.GetByRoomID(ctx, oid); err != nil {
		if errors.Is(err, czarcredstore.ErrNotFound) {
			s.log.Error("rotate czar: no credential record for room",
				zap.String("room_id", oid.Hex()))
			return models.Room{}, models.CzarCredential{}, ErrCzarConfigMissing
		}
		return models.Room{}, models.CzarCredential{}, err
	}

	next, err := NextCzar(&room)
	if err != nil {
		s.log.Error("rotate czar: current czar not in roster",
			zap.String("room_id", oid.Hex()),
			zap.String("czar_user_id", room.CzarUserID))
		return models.Room{}, models.CzarCredential{}, err
	}
	room.CzarUserID = next
	token := czartoken.Issue()

	var saved models.Room
	var cred models.CzarCredential
	err = txn.Run(ctx, s.client, s.log, func(ctx context.Context) error {
		var err error
		saved, err = s.rooms.Save(ctx, room)
		if err != nil {
			return err
		}
		cred, err = s.creds.Upsert(ctx, oid, next, token)
		return err
	})
	if err != nil {
		return models.Room{}, models.CzarCredential{}, mapRoomErr(err)
	}

	s.log.Info("czar rotated",
		zap.String("room_id", oid.Hex()),
		zap.String("czar_user_id", next))
	return saved, cred, nil
}

// RemoveMember drops a member (never the sitting czar).
func (s *Service) RemoveMember(ctx context.Context, roomID, userID string) (models.Room, error) {
	return s.mutate(ctx, roomID, func(r *models.Room) error {
		return RemoveMember(r, userID)
	})
}

// RefreshPrompt replaces the room's prompt image. The fetch happens first;
// a provider failure leaves the room untouched.
func (s *Service) RefreshPrompt(ctx context.Context, roomID string) (models.Room, error) {
	promptURL, err := s.prompts.FetchPromptURL(ctx)
	if err != nil {
		return models.Room{}, fmt.Errorf("%w: %v", ErrPromptUnavailable, err)
	}
	return s.mutate(ctx, roomID, func(r *models.Room) error {
		r.PromptImageURL = promptURL
		return nil
	})
}

// DeleteRoom removes the room and its credential record.
func (s *Service) DeleteRoom(ctx context.Context, roomID string) error {
	oid, err := parseRoomID(roomID)
	if err != nil {
		return err
	}

	return txn.Run(ctx, s.client, s.log, func(ctx context.Context) error {
		n, err := s.rooms.Delete(ctx, oid)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRoomNotFound
		}
		if _, err := s.creds.DeleteByRoomID(ctx, oid); err != nil {
			return err
		}
		s.log.Info("room deleted", zap.String("room_id", oid.Hex()))
		return nil
	})
}

// mutate runs one load → rule → save cycle against a room.
func (s *Service) mutate(ctx context.Context, roomID string, fn func(r *models.Room) error) (models.Room, error) {
	oid, err := parseRoomID(roomID)
	if err != nil {
		return models.Room{}, err
	}

	room, err := s.rooms.GetByID(ctx, oid)
	if err != nil {
		return models.Room{}, mapRoomErr(err)
	}
	if err := fn(&room); err != nil {
		return models.Room{}, err
	}

	saved, err := s.rooms.Save(ctx, room)
	if err != nil {
		return models.Room{}, mapRoomErr(err)
	}
	return saved, nil
}

// authorizeCzar checks the presented identity and token against the room's
// credential record.
func (s *Service) authorizeCzar(ctx context.Context, roomID primitive.ObjectID, czarID, token string) (models.CzarCredential, error) {
	cred, err := s.creds.GetByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, czarcredstore.ErrNotFound) {
			s.log.Error("no czar credential record for room",
				zap.String("room_id", roomID.Hex()))
			return models.CzarCredential{}, ErrCzarConfigMissing
		}
		return models.CzarCredential{}, err
	}
	if cred.CzarUserID != czarID || !czartoken.Equal(cred.Token, token) {
		return models.CzarCredential{}, ErrUnauthorized
	}
	return cred, nil
}

// parseRoomID follows the API's long-standing behavior: a malformed id is
// indistinguishable from an unknown room.
func parseRoomID(roomID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		return primitive.NilObjectID, ErrRoomNotFound
	}
	return oid, nil
}

func mapRoomErr(err error) error {
	switch {
	case errors.Is(err, roomstore.ErrNotFound):
		return ErrRoomNotFound
	case errors.Is(err, roomstore.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}
