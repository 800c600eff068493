package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"lingo-service/internal/logger"
)

// Hasher turns a plaintext password into a storable hash.
type Hasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	store  Store
	hasher Hasher
}

func NewService(store Store, hasher Hasher) *Service {
	return &Service{store: store, hasher: hasher}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storageError("list users", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrNotFound
	}

	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storageError("get user", err)
	}
	return u, nil
}

// Register stores a new user. The plaintext password never reaches the store.
func (s *Service) Register(ctx context.Context, userName, email, password string) (*User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := s.store.Create(ctx, &User{
		UserName:     userName,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, s.storageError("create user", err)
	}

	logger.Info("user registered", map[string]any{"user_id": u.ID})
	return u, nil
}

func (s *Service) UpdateEmail(ctx context.Context, userID, newEmail string) (*User, error) {
	return s.mutate(ctx, "update email", userID, func(id string) (*User, error) {
		return s.store.UpdateEmail(ctx, id, strings.TrimSpace(newEmail))
	})
}

func (s *Service) UpdateName(ctx context.Context, userID, newName string) (*User, error) {
	return s.mutate(ctx, "update name", userID, func(id string) (*User, error) {
		return s.store.UpdateName(ctx, id, newName)
	})
}

func (s *Service) AddFriend(ctx context.Context, userID string) (*User, error) {
	return s.mutate(ctx, "add friend", userID, func(id string) (*User, error) {
		return s.store.IncrementFriends(ctx, id)
	})
}

// RemoveFriend decrements the friend count, stopping at zero.
func (s *Service) RemoveFriend(ctx context.Context, userID string) (*User, error) {
	return s.mutate(ctx, "remove friend", userID, func(id string) (*User, error) {
		return s.store.DecrementFriends(ctx, id)
	})
}

// mutate looks the user up, then applies a single-field change.
func (s *Service) mutate(
	ctx context.Context,
	op string,
	userID string,
	apply func(id string) (*User, error),
) (*User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if _, err := s.store.GetByID(ctx, id.String()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storageError(op, err)
	}

	u, err := apply(id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storageError(op, err)
	}
	return u, nil
}

func (s *Service) storageError(op string, err error) error {
	serr := sanitize(err)
	logger.Error("user store failure", map[string]any{
		"op":    op,
		"error": err.Error(),
	})
	return serr
}
