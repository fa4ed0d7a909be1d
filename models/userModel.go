package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Managers own teams and can read their members' burnout data.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleUser    = "USER"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	First_name    *string            `json:"first_name" validate:"required,min=2,max=100"`
	Last_name     *string            `json:"last_name" validate:"required,min=2,max=100"`
	Password      *string            `json:"password" validate:"required,min=6"`
	Email         *string            `json:"email" validate:"required,email"`
	Role          *string            `json:"role"`
	Token         *string            `json:"token,omitempty"`
	Refresh_token *string            `json:"refresh_token,omitempty"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
	User_id       string             `json:"user_id"`
}

// DisplayName joins first and last name for prompts and notifications.
func (u User) DisplayName() string {
	name := ""
	if u.First_name != nil {
		name = *u.First_name
	}
	if u.Last_name != nil {
		if name != "" {
			name += " "
		}
		name += *u.Last_name
	}
	return name
}
