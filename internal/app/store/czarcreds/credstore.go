// internal/app/store/czarcreds/credstore.go
package czarcredstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/memedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrNotFound means no credential record exists for the room. Since every
// room gets a credential at creation, hitting this during normal play is a
// consistency bug, not a user error.
var ErrNotFound = errors.New("czar credential not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("czar_credentials")}
}

// Upsert installs the credential for a room, replacing any previous record.
// Overwriting is the invalidation mechanism: the old token stops matching
// the moment the new one lands.
func (s *Store) Upsert(ctx context.Context, roomID primitive.ObjectID, czarUserID, token string) (models.CzarCredential, error) {
	update := bson.M{
		"$set": bson.M{
			"czar_user_id": czarUserID,
			"token":        token,
			"issued_at":    time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id":     primitive.NewObjectID(),
			"room_id": roomID,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var cred models.CzarCredential
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"room_id": roomID}, update, opts).Decode(&cred); err != nil {
		return models.CzarCredential{}, err
	}
	return cred, nil
}

// GetByRoomID retrieves the active credential for a room.
func (s *Store) GetByRoomID(ctx context.Context, roomID primitive.ObjectID) (models.CzarCredential, error) {
	var cred models.CzarCredential
	err := s.c.FindOne(ctx, bson.M{"room_id": roomID}).Decode(&cred)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.CzarCredential{}, ErrNotFound
		}
		return models.CzarCredential{}, err
	}
	return cred, nil
}

// DeleteByRoomID removes a room's credential.
func (s *Store) DeleteByRoomID(ctx context.Context, roomID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the czar_credentials collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// One active credential per room.
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_czarcred_room_id"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
