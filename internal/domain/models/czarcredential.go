// internal/domain/models/czarcredential.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CzarCredential is the side-table record proving scoring authority for a
// room. One active record exists per room (unique index on room_id); its
// CzarUserID must always mirror Room.CzarUserID, and the token is overwritten
// on every czar rotation so stale tokens stop working immediately.
type CzarCredential struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	RoomID     primitive.ObjectID `bson:"room_id" json:"roomId"`
	CzarUserID string             `bson:"czar_user_id" json:"czarUserId"`
	Token      string             `bson:"token" json:"token"`
	IssuedAt   time.Time          `bson:"issued_at" json:"issuedAt"`
}
