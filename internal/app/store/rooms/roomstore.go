// internal/app/store/rooms/roomstore.go
package roomstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/memedeck/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound          = errors.New("room not found")
	ErrDuplicateJoinCode = errors.New("a room with this join code already exists")
	// ErrConflict means the room changed between load and save; the caller's
	// copy is stale and the operation must not be silently replayed.
	ErrConflict = errors.New("room was modified concurrently")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rooms")}
}

// Create inserts a new room. The join code is expected to be set already;
// a duplicate code surfaces as ErrDuplicateJoinCode so the caller can
// regenerate and retry.
func (s *Store) Create(ctx context.Context, room models.Room) (models.Room, error) {
	now := time.Now().UTC()
	room.ID = primitive.NewObjectID()
	room.TitleCI = text.Fold(room.Title)
	room.Version = 1
	room.CreatedAt = now
	room.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, room)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Room{}, ErrDuplicateJoinCode
		}
		return models.Room{}, err
	}
	return room, nil
}

// GetByID retrieves a room by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Room, error) {
	var room models.Room
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Room{}, ErrNotFound
		}
		return models.Room{}, err
	}
	return room, nil
}

// GetByJoinCode retrieves a room by its join code.
func (s *Store) GetByJoinCode(ctx context.Context, code string) (models.Room, error) {
	var room models.Room
	err := s.c.FindOne(ctx, bson.M{"join_code": code}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Room{}, ErrNotFound
		}
		return models.Room{}, err
	}
	return room, nil
}

// Save replaces the whole room document, conditioned on the version the
// caller loaded. The replace bumps Version, so a concurrent writer's replace
// no longer matches and comes back as ErrConflict instead of clobbering.
func (s *Store) Save(ctx context.Context, room models.Room) (models.Room, error) {
	loaded := room.Version
	room.TitleCI = text.Fold(room.Title)
	room.Version = loaded + 1
	room.UpdatedAt = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": room.ID, "version": loaded}, room)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Room{}, ErrDuplicateJoinCode
		}
		return models.Room{}, err
	}
	if res.MatchedCount == 0 {
		// Either the room is gone or someone else saved first.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": room.ID})
		if err != nil {
			return models.Room{}, err
		}
		if n == 0 {
			return models.Room{}, ErrNotFound
		}
		return models.Room{}, ErrConflict
	}
	return room, nil
}

// List returns all rooms, oldest first.
func (s *Store) List(ctx context.Context) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Delete removes a room by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the rooms collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Join codes are how players find a room; collisions would route two
		// parties into one game, so uniqueness is enforced here.
		{
			Keys:    bson.D{{Key: "join_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_room_join_code"),
		},
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}},
			Options: options.Index().SetName("idx_room_title_ci"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_room_created_at"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
