package item

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/itempad/itempad/internal/item/entity"
	itemrepo "github.com/itempad/itempad/internal/item/repo"
)

// sentinel errors for common failure modes
var ErrNotFound = errors.New("not found")

const maxTitleLen = 200

// ValidationError is a user-facing input error.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Service encapsulates item business logic. Every operation takes the owner's
// id; the repository conjoins it with the item id, so a foreign-owned item is
// reported as ErrNotFound exactly like a nonexistent one.
type Service struct {
	repo itemrepo.Repository
}

func NewService(r itemrepo.Repository) *Service {
	return &Service{repo: r}
}

// normalizeInput trims the title and collapses an empty description to nil.
func normalizeInput(title string, description *string) (string, *string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, ValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return "", nil, ValidationError("title must be at most 200 characters")
	}
	if description != nil {
		d := strings.TrimSpace(*description)
		if d == "" {
			description = nil
		} else {
			description = &d
		}
	}
	return title, description, nil
}

func (s *Service) Create(ctx context.Context, ownerID int64, title string, description *string) (*entity.Item, error) {
	title, description, err := normalizeInput(title, description)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, ownerID, title, description)
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]*entity.Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, id, ownerID int64) (*entity.Item, error) {
	it, err := s.repo.Get(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, id, ownerID int64, title string, description *string) (*entity.Item, error) {
	title, description, err := normalizeInput(title, description)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.Update(ctx, id, ownerID, title, description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	deleted, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
