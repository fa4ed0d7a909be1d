package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Team struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	ManagerID string             `bson:"manager_id" json:"managerId"`
	Members   []string           `bson:"members" json:"members"` // user ids
	ProjectID string             `bson:"project_id,omitempty" json:"projectId,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description string             `bson:"description" json:"description"`
	OwnerID     string             `bson:"owner_id" json:"ownerId"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
