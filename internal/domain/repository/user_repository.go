package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"social_feed/internal/common"
	"social_feed/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	msgEmailTaken    = "Email already registered"
	msgUsernameTaken = "Username already taken"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdateBio(ctx context.Context, id int64, bio *string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, email, username, hashed_password, bio, created_at`

// Create inserts user and fills in the server-assigned ID and CreatedAt.
func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (email, username, hashed_password, bio)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.Username, user.HashedPassword, user.Bio).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == common.UniqueViolation {
			if pgErr.ConstraintName == "users_username_key" {
				return common.NewError(common.ErrConflict, msgUsernameTaken)
			}
			return common.NewError(common.ErrConflict, msgEmailTaken)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapFind("FindByEmail", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, wrapFind("FindByUsername", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapFind("FindByID", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateBio(ctx context.Context, id int64, bio *string) (*model.User, error) {
	query := `UPDATE users SET bio = $1 WHERE id = $2 RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, bio, id))
	if err != nil {
		return nil, wrapFind("UpdateBio", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var bio sql.NullString
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword, &bio, &user.CreatedAt); err != nil {
		return nil, err
	}
	if bio.Valid {
		user.Bio = &bio.String
	}
	return user, nil
}

func wrapFind(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	return fmt.Errorf("pgUserRepository.%s: %w", op, err)
}
