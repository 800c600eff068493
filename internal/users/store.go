package users

import "context"

// Store persists user records. Lookups and updates of a missing user
// return ErrNotFound.
type Store interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateEmail(ctx context.Context, id, email string) (*User, error)
	UpdateName(ctx context.Context, id, name string) (*User, error)
	IncrementFriends(ctx context.Context, id string) (*User, error)
	// DecrementFriends never takes the count below zero.
	DecrementFriends(ctx context.Context, id string) (*User, error)
}
