package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"admincore.org/internal/store"
)

func TestGetMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select value from kv_state").
		WithArgs("session.token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	s := NewWithDB(db)
	if _, err := s.Get(context.Background(), "session.token"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPutThenGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into kv_state").
		WithArgs("session.profile", `{"id":"u1"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("select value from kv_state").
		WithArgs("session.profile").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"id":"u1"}`))

	s := NewWithDB(db)
	ctx := context.Background()
	if err := s.Put(ctx, "session.profile", `{"id":"u1"}`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "session.profile")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"id":"u1"}` {
		t.Fatalf("unexpected value: %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delete from kv_state").
		WithArgs("session.token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewWithDB(db)
	if err := s.Delete(context.Background(), "session.token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
