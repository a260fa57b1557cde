package repository

import (
	"context"
	"database/sql"
	"fmt"
	"social_feed/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// List returns posts newest first, each with its author loaded.
	List(ctx context.Context, offset, limit int) ([]model.Post, error)
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

// Create inserts post and fills in ID, CreatedAt and the counter defaults.
func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (content, author_id)
	          VALUES ($1, $2)
	          RETURNING id, created_at, likes, comments`
	err := r.db.QueryRowContext(ctx, query, post.Content, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.Likes, &post.Comments)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	query := `
        SELECT p.id, p.content, p.created_at, p.author_id, p.likes, p.comments,
               u.id, u.email, u.username, u.bio, u.created_at
        FROM posts p
        JOIN users u ON u.id = p.author_id
        ORDER BY p.created_at DESC, p.id DESC
        OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.List: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		author := &model.User{}
		var bio sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Content, &p.CreatedAt, &p.AuthorID, &p.Likes, &p.Comments,
			&author.ID, &author.Email, &author.Username, &bio, &author.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		if bio.Valid {
			author.Bio = &bio.String
		}
		p.Author = author
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.List rows: %w", err)
	}
	return posts, nil
}
