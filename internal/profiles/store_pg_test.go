package profiles

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var profileCols = []string{"id", "username", "plan", "credits_total", "credits_used", "created_at", "updated_at"}

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGStore{DB: db}, mock
}

func TestPGStoreConsumeIsConditional(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE profiles\s+SET credits_used = credits_used \+ 1.*WHERE id = \$1 AND credits_used < credits_total`).
		WithArgs("user-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("user-1", "ada", "free", 10, 4, now, now))

	p, err := store.Consume(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if p.CreditsUsed != 4 || p.Plan != PlanFree {
		t.Fatalf("unexpected profile %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreConsumeLimitReached(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE profiles").
		WithArgs("user-1", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT id, username, plan").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("user-1", "ada", "free", 10, 10, now, now))

	if _, err := store.Consume(context.Background(), "user-1"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreEnsureInsertsFreePlan(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs("user-1", "ada", "free", 10, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, username, plan").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("user-1", "ada", "free", 10, 0, now, now))

	p, err := store.Ensure(context.Background(), "user-1", "ada")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if p.Username != "ada" || p.CreditsTotal != 10 {
		t.Fatalf("unexpected profile %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreSetPlanMissingProfile(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("UPDATE profiles").
		WithArgs("ghost", "pro", 100, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := store.SetPlan(context.Background(), "ghost", Plan{ID: PlanPro, Credits: 100})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
