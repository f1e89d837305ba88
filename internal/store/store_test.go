package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
	if !isUniqueViolation(pgErr) {
		t.Error("pgconn 23505 not detected")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", pgErr)) {
		t.Error("wrapped pgconn 23505 not detected")
	}
	if !isUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Error("gorm.ErrDuplicatedKey not detected")
	}

	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation misread as unique violation")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Error("arbitrary error misread as unique violation")
	}
}
