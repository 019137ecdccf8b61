package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/fundbuero/internal/model"
)

const userColumns = `id, prename, surname, username, password_hash, phone, email, profile_picture,
	created_at, updated_at`

// CreateUser creates a new user. Emails are stored normalized. Duplicate
// usernames or emails fail with ErrConflict.
func CreateUser(ctx context.Context, db *sql.DB, u *model.User) (*model.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, u.Prename, u.Surname, u.Username, u.PasswordHash, nullString(u.Phone), model.NormalizeEmail(u.Email),
		nullString(u.ProfilePicture), now, now,
	)
	if err != nil {
		return nil, wrap("creating user", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID, or nil if it does not exist.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email, ignoring case, or nil if none is
// registered.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, model.NormalizeEmail(email)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns all users in registration order.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites a user's account fields and password hash.
func UpdateUser(ctx context.Context, db *sql.DB, u *model.User) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET prename = ?, surname = ?, username = ?, password_hash = ?, phone = ?,
		        email = ?, updated_at = ?
		 WHERE id = ?`,
		u.Prename, u.Surname, u.Username, u.PasswordHash, nullString(u.Phone), model.NormalizeEmail(u.Email),
		time.Now().UTC(), u.ID,
	)
	if err != nil {
		return false, wrap("updating user", err)
	}
	return affected(result)
}

// UpdateProfile changes the self-service profile fields of a user.
func UpdateProfile(ctx context.Context, db *sql.DB, id, prename, surname, phone string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET prename = ?, surname = ?, phone = ?, updated_at = ? WHERE id = ?`,
		prename, surname, nullString(phone), time.Now().UTC(), id,
	)
	if err != nil {
		return false, wrap("updating profile", err)
	}
	return affected(result)
}

// SetProfilePicture points a user's profile picture at a stored media path.
func SetProfilePicture(ctx context.Context, db *sql.DB, id, path string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET profile_picture = ?, updated_at = ? WHERE id = ?`,
		path, time.Now().UTC(), id,
	)
	if err != nil {
		return false, wrap("setting profile picture", err)
	}
	return affected(result)
}

// DeleteUser removes a user. Users that still own items fail with ErrConflict.
func DeleteUser(ctx context.Context, db *sql.DB, id string) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, wrap("deleting user", err)
	}
	return affected(result)
}

func scanUser(s scanner) (*model.User, error) {
	u := &model.User{}
	var phone, picture sql.NullString
	err := s.Scan(&u.ID, &u.Prename, &u.Surname, &u.Username, &u.PasswordHash, &phone, &u.Email,
		&picture, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.ProfilePicture = picture.String
	return u, nil
}
