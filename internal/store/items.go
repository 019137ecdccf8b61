package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/fundbuero/internal/model"
)

const itemColumns = `id, name, title, img, type, date, reported_at, category_id, location_id,
	description, user_id, created_at, updated_at`

// CreateItem stores a new item under a fresh ID.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.Name, item.Title, nullString(item.Img), item.Type, item.Date, item.ReportedAt,
		item.CategoryID, item.LocationID, nullString(item.Description), item.UserID, now, now,
	)
	if err != nil {
		return nil, wrap("creating item", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, newest first, optionally only those reported
// by userID.
func ListItems(ctx context.Context, db *sql.DB, userID string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem overwrites an item's fields. The owner is never changed and an
// empty Img keeps the stored image. Reports whether the item exists.
func UpdateItem(ctx context.Context, db *sql.DB, item *model.Item) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, title = ?, img = COALESCE(?, img), type = ?, date = ?,
		        reported_at = ?, category_id = ?, location_id = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Title, nullString(item.Img), item.Type, item.Date,
		item.ReportedAt, item.CategoryID, item.LocationID, nullString(item.Description), time.Now().UTC(),
		item.ID,
	)
	if err != nil {
		return false, wrap("updating item", err)
	}
	return affected(result)
}

// DeleteItem removes an item. Reports whether a row was removed.
func DeleteItem(ctx context.Context, db *sql.DB, id string) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, wrap("deleting item", err)
	}
	return affected(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var img, description sql.NullString
	var date sql.NullInt64
	err := s.Scan(&item.ID, &item.Name, &item.Title, &img, &item.Type, &date, &item.ReportedAt,
		&item.CategoryID, &item.LocationID, &description, &item.UserID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Img = img.String
	item.Description = description.String
	if date.Valid {
		item.Date = &date.Int64
	}
	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting affected rows: %w", err)
	}
	return n > 0, nil
}
