package repo

import (
	"context"

	"github.com/itempad/itempad/internal/item/entity"
)

// Repository is the item store. Get and Update return sql.ErrNoRows when no
// row matches both the id and the owner; Delete reports false. A row owned by
// someone else and a row that does not exist are indistinguishable by design.
type Repository interface {
	Create(ctx context.Context, ownerID int64, title string, description *string) (*entity.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Item, error)
	Get(ctx context.Context, id, ownerID int64) (*entity.Item, error)
	Update(ctx context.Context, id, ownerID int64, title string, description *string) (*entity.Item, error)
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}
