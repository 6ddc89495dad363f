package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DorLamesh/devops-web-app/internal/common"
	"github.com/DorLamesh/devops-web-app/internal/dbx"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	// Empty email is stored as NULL so the unique constraint only applies to
	// real addresses.
	var email any
	if user.Email != "" {
		email = user.Email
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Username, email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	query :=
		`SELECT id, username, COALESCE(email, ''), password_hash, created_at FROM users
		 WHERE username = $1 OR email = $1
		 ORDER BY id
		 LIMIT 1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, identifier).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, COALESCE(email, ''), password_hash, created_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByToken resolves a session token to its owning user. The password hash
// is deliberately not selected.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	query :=
		`SELECT u.id, u.username, COALESCE(u.email, '')
		 FROM tokens t JOIN users u ON u.id = t.user_id
		 WHERE t.token = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&user.ID, &user.Username, &user.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, COALESCE(email, ''), created_at FROM users
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
