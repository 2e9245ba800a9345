package repo

import (
	"context"

	"github.com/itempad/itempad/internal/user/entity"
)

// Repository is the account store. Implementations return sql.ErrNoRows from
// the Get methods when no account matches.
type Repository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
