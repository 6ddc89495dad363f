// Package db opens the Postgres connection, applies migrations, and hands
// out the repositories built on top of it.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/DorLamesh/devops-web-app/internal/server/migrations"
	"github.com/DorLamesh/devops-web-app/internal/server/repositories/tokens"
	"github.com/DorLamesh/devops-web-app/internal/server/repositories/users"
)

type PostgresManager struct {
	db     *sql.DB
	users  users.Repository
	tokens tokens.Repository
}

func (m *PostgresManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresManager) Users() users.Repository {
	return m.users
}

func (m *PostgresManager) Tokens() tokens.Repository {
	return m.tokens
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

// RunMigrations applies the embedded goose migrations. All statements use
// "create if not exists" semantics, so repeated startups are safe.
func (m *PostgresManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresManager(dsn string) (*PostgresManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresManager{
		db:     db,
		users:  users.NewPostgresRepository(db),
		tokens: tokens.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
