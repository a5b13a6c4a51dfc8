package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
)

const userColumns = `id, username, email, first_name, last_name, hashed_password, role, is_active, phone_number`

// CreateUser persists a new user and fills in the server-assigned id.
// A taken username comes back as ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.q.QueryRowxContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name, hashed_password, role, is_active, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, user.Username, user.Email, user.FirstName, user.LastName,
		user.Password, user.Role, user.IsActive, user.PhoneNumber).
		Scan(&user.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.q.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.q.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword swaps the stored hash for an already-hashed value.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, hash string) error {
	res, err := s.q.ExecContext(ctx, `UPDATE users SET hashed_password=$1 WHERE id=$2`, hash, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *Store) UpdateUserPhoneNumber(ctx context.Context, id int64, phone string) error {
	res, err := s.q.ExecContext(ctx, `UPDATE users SET phone_number=$1 WHERE id=$2`, phone, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
