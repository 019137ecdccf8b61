package store

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConflict is returned when a write violates a unique or foreign key
// constraint (duplicate email, name still in use, ...).
var ErrConflict = errors.New("conflict")

// wrap annotates err with op and marks constraint violations as ErrConflict.
func wrap(op string, err error) error {
	if isConstraint(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
