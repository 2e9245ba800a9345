package repo

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/itempad/itempad/internal/user/entity"
)

// MemoryRepo is an in-memory Repository used by tests and local experiments.
// It mirrors the Postgres semantics: sql.ErrNoRows on misses, case-insensitive
// email uniqueness.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (m *MemoryRepo) Create(ctx context.Context, username, email, passwordHash string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &entity.User{
		ID:           m.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextID++
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *MemoryRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemoryRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes an account; used to simulate accounts deleted after a token
// was issued.
func (m *MemoryRepo) Delete(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}
