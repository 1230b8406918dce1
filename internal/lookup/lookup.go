package lookup

import (
	"context"
	"errors"
	"strings"

	"transitcoop/internal/domain/users"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidEmail = errors.New("invalid email")

type Accounts interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*users.Profile, error)
}

type Roles interface {
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]roles.Role, error)
}

type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type Result struct {
	Exists  bool
	User    UserRef
	Profile *users.Profile
	Roles   []string
}

type Service struct {
	accounts Accounts
	roles    Roles
	logger   *zap.SugaredLogger
}

func NewService(accounts Accounts, roles Roles, logger *zap.SugaredLogger) *Service {
	return &Service{accounts: accounts, roles: roles, logger: logger}
}

// NormalizeEmail trims and lowercases email, failing when there is no "@".
func NormalizeEmail(email string) (string, error) {
	normalized := users.NormalizeEmail(email)
	if !strings.Contains(normalized, "@") {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// Lookup finds an account by email. Profile and role lookups are best
// effort: failures are logged and leave Profile nil / Roles empty.
func (s *Service) Lookup(ctx context.Context, email string) (*Result, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return &Result{Exists: false}, nil
		}
		return nil, err
	}

	res := &Result{
		Exists: true,
		User:   UserRef{ID: account.ID, Email: users.NormalizeEmail(account.Email)},
		Roles:  []string{},
	}

	var g errgroup.Group

	g.Go(func() error {
		profile, err := s.accounts.GetProfile(ctx, account.ID)
		if err != nil {
			if !errors.Is(err, users.ErrNotFound) {
				s.logger.Warnw("profile lookup failed", "user_id", account.ID, "error", err)
			}
			return nil
		}
		res.Profile = profile
		return nil
	})

	g.Go(func() error {
		assigned, err := s.roles.GetUserRoles(ctx, account.ID)
		if err != nil {
			s.logger.Warnw("roles lookup failed", "user_id", account.ID, "error", err)
			return nil
		}
		res.Roles = roles.ToStrings(assigned)
		return nil
	})

	_ = g.Wait()

	return res, nil
}
