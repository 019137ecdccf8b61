package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/fundbuero/internal/model"
)

// Vocabulary names a reference table. Only the constants below are valid;
// the value is interpolated into SQL.
type Vocabulary string

// Vocabularies.
const (
	Categories Vocabulary = "categories"
	Locations  Vocabulary = "locations"
)

// CreateTerm adds a term to a vocabulary.
func CreateTerm(ctx context.Context, db *sql.DB, v Vocabulary, name string) (*model.Term, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO `+string(v)+` (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, now, now,
	)
	if err != nil {
		return nil, wrap("creating "+v.singular(), err)
	}

	return GetTerm(ctx, db, v, id)
}

// GetTerm returns a term by ID, or nil if it does not exist.
func GetTerm(ctx context.Context, db *sql.DB, v Vocabulary, id string) (*model.Term, error) {
	t := &model.Term{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM `+string(v)+` WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", v.singular(), err)
	}
	return t, nil
}

// ListTerms returns every term of a vocabulary ordered by name.
func ListTerms(ctx context.Context, db *sql.DB, v Vocabulary) ([]model.Term, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM `+string(v)+` ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", v, err)
	}
	defer rows.Close()

	var terms []model.Term
	for rows.Next() {
		var t model.Term
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", v.singular(), err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// RenameTerm changes a term's name. Reports whether the term exists.
func RenameTerm(ctx context.Context, db *sql.DB, v Vocabulary, id, name string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE `+string(v)+` SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), id,
	)
	if err != nil {
		return false, wrap("updating "+v.singular(), err)
	}
	return affected(result)
}

// DeleteTerm removes a term. Terms still referenced by items fail with
// ErrConflict.
func DeleteTerm(ctx context.Context, db *sql.DB, v Vocabulary, id string) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM `+string(v)+` WHERE id = ?`, id)
	if err != nil {
		return false, wrap("deleting "+v.singular(), err)
	}
	return affected(result)
}

func (v Vocabulary) singular() string {
	switch v {
	case Categories:
		return "category"
	case Locations:
		return "location"
	default:
		return string(v)
	}
}
