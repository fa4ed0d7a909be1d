package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a polled inbox record. Delivery is best-effort; there is
// no fan-out or push channel.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	Type      string             `bson:"type" json:"type"` // e.g. "task-status"
	Message   string             `bson:"message" json:"message"`
	TaskID    string             `bson:"task_id,omitempty" json:"taskId,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
