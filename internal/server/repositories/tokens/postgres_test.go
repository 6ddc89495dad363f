package tokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DorLamesh/devops-web-app/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+tokens\s*\(token,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*$`

	mock.ExpectExec(q).
		WithArgs("tok-1", int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), "tok-1", 42); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DuplicateToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+tokens`).
		WithArgs("tok-1", int64(42)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.Create(context.Background(), "tok-1", 42)
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+tokens`).
		WithArgs("tok-1", int64(42)).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), "tok-1", 42)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
