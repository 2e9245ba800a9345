package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/itempad/itempad/internal/auth"
	"github.com/itempad/itempad/internal/user/entity"
	userrepo "github.com/itempad/itempad/internal/user/repo"
)

var (
	// ErrBadCredentials covers both unknown username and failed password
	// verification, so callers cannot enumerate usernames.
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUsernameTaken  = errors.New("username is already taken")
	ErrEmailTaken     = errors.New("email is already registered")
)

// ValidationError is a user-facing registration input error.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// UserService orchestrates registration and credential verification.
type UserService struct {
	repo   userrepo.Repository
	hasher auth.PasswordHasher
}

func NewUserService(r userrepo.Repository, hasher auth.PasswordHasher) *UserService {
	if hasher == nil {
		hasher = auth.NewArgon2Hasher()
	}
	return &UserService{repo: r, hasher: hasher}
}

// Register validates the form, enforces username/email uniqueness, hashes the
// password and creates the account.
func (s *UserService) Register(ctx context.Context, username, email, password, confirm string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(username) < 3 {
		return nil, ValidationError("username must be at least 3 characters")
	}
	if email == "" {
		return nil, ValidationError("email is required")
	}
	if len(password) < 6 {
		return nil, ValidationError("password must be at least 6 characters")
	}
	if password != confirm {
		return nil, ValidationError("passwords do not match")
	}

	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, username, email, hash)
}

// Authenticate verifies a username/password pair. Unknown usernames, wrong
// passwords and corrupt stored hashes all yield ErrBadCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// FindAccountByID implements auth.AccountLookup. A missing account (deleted
// after token issuance) yields (nil, nil).
func (s *UserService) FindAccountByID(ctx context.Context, id int64) (*auth.Identity, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &auth.Identity{ID: u.ID, Username: u.Username}, nil
}
