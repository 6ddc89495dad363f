package tokens

import (
	"context"
	"fmt"

	"github.com/DorLamesh/devops-web-app/internal/common"
	"github.com/DorLamesh/devops-web-app/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a (token, user) association. A duplicate token value is
// reported as common.ErrorConflict so the caller can regenerate and retry.
func (r *PostgresRepository) Create(ctx context.Context, token string, userID int64) error {

	query :=
		`INSERT INTO tokens (token, user_id)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, token, userID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
