package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/guiaemprende/backend/internal/models"
)

// CreateUser inserts a new, unverified user. The registration timestamp is
// set here and never updated afterwards.
func (r *Repository) CreateUser(ctx context.Context, nombre, email string) (*models.User, error) {
	user := &models.User{
		Nombre:          nombre,
		Email:           email,
		FechaDeRegistro: time.Now().UTC(),
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (nombre, email, fecha_de_registro, is_verified) VALUES (?, ?, ?, 0)`,
		user.Nombre, user.Email, user.FechaDeRegistro)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. The email column uses a
// case-insensitive collation, so lookups match regardless of case.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserName updates the display name of a user.
func (r *Repository) UpdateUserName(ctx context.Context, id int64, nombre string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET nombre = ? WHERE id = ?`, nombre, id)
	return err
}

// MarkUserVerified flips the verification flag. The flag only ever moves
// from false to true; marking an already verified user is a no-op.
func (r *Repository) MarkUserVerified(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_verified = 1 WHERE id = ? AND is_verified = 0`, id)
	return err
}

// DeleteUser removes a user record. Used to roll back a registration whose
// verification email could not be queued.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
