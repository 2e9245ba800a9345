package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/itempad/itempad/internal/item/entity"
)

// ItemRepo provides data access for the items table using sqlx. Every
// single-item statement conjoins id and owner_id in the same predicate, so
// ownership is enforced atomically at the data-access boundary rather than
// checked after the fact.
type ItemRepo struct {
	db *sqlx.DB
}

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// EnsureTable creates the items table if not exists (idempotent).
func (r *ItemRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
  id BIGSERIAL PRIMARY KEY,
  owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_items_owner_id ON items(owner_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *ItemRepo) Create(ctx context.Context, ownerID int64, title string, description *string) (*entity.Item, error) {
	const q = `INSERT INTO items (owner_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, title, description, created_at, updated_at`
	var row entity.Item
	if err := r.db.GetContext(ctx, &row, q, ownerID, title, description); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByOwner returns the owner's items, newest first. The owner id is the
// only key, so the listing is owner-scoped by construction.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Item, error) {
	const q = `SELECT id, owner_id, title, description, created_at, updated_at
		FROM items WHERE owner_id=$1
		ORDER BY created_at DESC, id DESC`
	items := []*entity.Item{}
	if err := r.db.SelectContext(ctx, &items, q, ownerID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepo) Get(ctx context.Context, id, ownerID int64) (*entity.Item, error) {
	const q = `SELECT id, owner_id, title, description, created_at, updated_at
		FROM items WHERE id=$1 AND owner_id=$2`
	var row entity.Item
	if err := r.db.GetContext(ctx, &row, q, id, ownerID); err != nil {
		return nil, err
	}
	return &row, nil
}

// Update rewrites title and description and refreshes updated_at, matching id
// and owner in one statement. sql.ErrNoRows means no owned row matched.
func (r *ItemRepo) Update(ctx context.Context, id, ownerID int64, title string, description *string) (*entity.Item, error) {
	const q = `UPDATE items SET title=$3, description=$4, updated_at=NOW()
		WHERE id=$1 AND owner_id=$2
		RETURNING id, owner_id, title, description, created_at, updated_at`
	var row entity.Item
	if err := r.db.GetContext(ctx, &row, q, id, ownerID, title, description); err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the owned row and reports whether anything was deleted.
func (r *ItemRepo) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	const q = `DELETE FROM items WHERE id=$1 AND owner_id=$2`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
