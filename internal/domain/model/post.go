package model

import (
	"time"
)

// Post is a feed entry. Likes and Comments are stored counters that no
// endpoint increments yet.
type Post struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  int64     `json:"author_id"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Author    *User     `json:"author"`
}
