package repo

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/itempad/itempad/internal/item/entity"
)

// MemoryRepo is an in-memory Repository used by tests. Ownership matching
// happens inside the same locked section as the lookup or mutation, mirroring
// the single-statement guarantee of the SQL implementation.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*entity.Item
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, items: make(map[int64]*entity.Item)}
}

func (m *MemoryRepo) Create(ctx context.Context, ownerID int64, title string, description *string) (*entity.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	it := &entity.Item{
		ID:          m.nextID,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextID++
	m.items[it.ID] = it
	cp := *it
	return &cp, nil
}

func (m *MemoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Item{}
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id, ownerID int64) (*entity.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	cp := *it
	return &cp, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id, ownerID int64, title string, description *string) (*entity.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	it.Title = title
	it.Description = description
	it.UpdatedAt = time.Now().UTC()
	cp := *it
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok || it.OwnerID != ownerID {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}
