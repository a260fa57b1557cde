package model

import (
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	Bio            *string   `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
}
