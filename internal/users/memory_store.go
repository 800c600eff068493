package users

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEmailTaken = errors.New("email already registered")

// MemoryStore is a Store kept in process memory, used when no database
// is configured. Records are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

func (m *MemoryStore) List(context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]User, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (m *MemoryStore) Create(_ context.Context, u *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(u.Email, "") {
		return nil, ErrEmailTaken
	}

	created := *u
	created.ID = uuid.NewString()
	created.FriendCount = 0
	created.CreatedAt = time.Now().UTC()
	m.users[created.ID] = created
	return &created, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateEmail(_ context.Context, id, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(email, id) {
		return nil, ErrEmailTaken
	}
	return m.apply(id, func(u *User) { u.Email = email })
}

func (m *MemoryStore) UpdateName(_ context.Context, id, name string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apply(id, func(u *User) { u.UserName = name })
}

func (m *MemoryStore) IncrementFriends(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apply(id, func(u *User) { u.FriendCount++ })
}

func (m *MemoryStore) DecrementFriends(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apply(id, func(u *User) {
		if u.FriendCount > 0 {
			u.FriendCount--
		}
	})
}

// apply must be called with mu held.
func (m *MemoryStore) apply(id string, fn func(*User)) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(&u)
	m.users[id] = u
	return &u, nil
}

// emailTaken must be called with mu held.
func (m *MemoryStore) emailTaken(email, exceptID string) bool {
	for id, u := range m.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
