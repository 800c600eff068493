package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lingo-service/internal/db"
)

const userColumns = `id, user_name, email, password_hash, friend_count, created_at`

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.FriendCount, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (s *PostgresStore) Create(ctx context.Context, u *User) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (user_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		u.UserName, u.Email, u.PasswordHash,
	)
	return scanUser(row)
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

func (s *PostgresStore) UpdateEmail(ctx context.Context, id, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET email = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, email,
	)
	return scanUser(row)
}

func (s *PostgresStore) UpdateName(ctx context.Context, id, name string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET user_name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, name,
	)
	return scanUser(row)
}

func (s *PostgresStore) IncrementFriends(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET friend_count = friend_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id,
	)
	return scanUser(row)
}

func (s *PostgresStore) DecrementFriends(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET friend_count = GREATEST(friend_count - 1, 0), updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id,
	)
	return scanUser(row)
}
