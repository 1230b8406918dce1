package provisioning

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"transitcoop/internal/domain/users"
	"transitcoop/internal/mailer"
	"transitcoop/internal/metrics"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seed is one demo account the provisioner guarantees exists.
type Seed struct {
	Email     string
	Role      roles.Role
	FirstName string
	LastName  string
	IDNumber  string
	Phone     string
	Address   string
}

// DefaultRoster has one account per role under the given mail domain.
func DefaultRoster(domain string) []Seed {
	out := make([]Seed, 0, len(roles.All()))
	for i, d := range roles.All() {
		out = append(out, Seed{
			Email:     fmt.Sprintf("%s@%s", d.Role, domain),
			Role:      d.Role,
			FirstName: "Test",
			LastName:  d.Name,
			IDNumber:  fmt.Sprintf("TEST-%04d", i+1),
			Phone:     fmt.Sprintf("+10000000%03d", i+1),
			Address:   "Cooperative HQ",
		})
	}
	return out
}

type Accounts interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*users.Profile, error)
	CreateWithProfile(ctx context.Context, user *users.User, profile *users.Profile, role string) error
	UpsertProfile(ctx context.Context, profile *users.Profile) error
}

type Roles interface {
	UserHasRole(ctx context.Context, userID uuid.UUID, role roles.Role) (bool, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role roles.Role) error
}

// Provisioner creates or completes the demo accounts of a roster.
type Provisioner struct {
	accounts Accounts
	roles    Roles
	mailer   mailer.Client
	roster   []Seed
	logger   *zap.SugaredLogger
}

// NewProvisioner builds a Provisioner. mail may be nil, in which case no
// credentials are e-mailed.
func NewProvisioner(accounts Accounts, rs Roles, mail mailer.Client, roster []Seed, logger *zap.SugaredLogger) *Provisioner {
	return &Provisioner{
		accounts: accounts,
		roles:    rs,
		mailer:   mail,
		roster:   roster,
		logger:   logger,
	}
}

// Invoke runs the roster in order. Per-account failures are reported in the
// results, never as an error.
func (p *Provisioner) Invoke(ctx context.Context) (*Response, error) {
	results := make([]Result, 0, len(p.roster))
	for _, seed := range p.roster {
		r := p.provision(ctx, seed)
		metrics.ObserveProvisioning(string(r.Status))
		results = append(results, r)
	}
	return &Response{Results: results, Summary: Summarize(results)}, nil
}

func (p *Provisioner) provision(ctx context.Context, seed Seed) Result {
	email := users.NormalizeEmail(seed.Email)

	existing, err := p.accounts.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, users.ErrNotFound):
		return p.create(ctx, seed, email)
	case err != nil:
		p.logger.Errorw("provisioning lookup failed", "email", email, "error", err)
		return Result{Email: email, Status: StatusError, Message: "Could not check existing account"}
	}

	return p.complete(ctx, seed, existing)
}

func (p *Provisioner) create(ctx context.Context, seed Seed, email string) Result {
	plain, err := GeneratePassword(passwordLength)
	if err != nil {
		p.logger.Errorw("password generation failed", "email", email, "error", err)
		return Result{Email: email, Status: StatusError, Message: "Could not generate password"}
	}

	user := &users.User{Email: email, IsActive: true}
	if err := user.Password.Set(plain); err != nil {
		p.logger.Errorw("password hashing failed", "email", email, "error", err)
		return Result{Email: email, Status: StatusError, Message: "Could not hash password"}
	}

	if err := p.accounts.CreateWithProfile(ctx, user, seed.profile(), string(seed.Role)); err != nil {
		p.logger.Errorw("account creation failed", "email", email, "error", err)
		return Result{Email: email, Status: StatusError, Message: err.Error()}
	}

	p.logger.Infow("test user created", "email", email, "role", seed.Role, "user_id", user.ID)
	p.sendCredentials(seed, email, plain)

	return Result{
		Email:   email,
		Status:  StatusCreated,
		Message: "User created",
		Credentials: &Credentials{
			Role:     string(seed.Role),
			Password: plain,
		},
	}
}

// complete adds whatever an existing account is missing from its seed.
func (p *Provisioner) complete(ctx context.Context, seed Seed, user *users.User) Result {
	email := users.NormalizeEmail(user.Email)
	var changes []string

	has, err := p.roles.UserHasRole(ctx, user.ID, seed.Role)
	if err != nil {
		p.logger.Errorw("role check failed", "email", email, "error", err)
		return Result{Email: email, Status: StatusError, Message: "Could not check roles"}
	}
	if !has {
		if err := p.roles.AssignRole(ctx, user.ID, seed.Role); err != nil {
			p.logger.Errorw("role assignment failed", "email", email, "error", err)
			return Result{Email: email, Status: StatusError, Message: "Could not assign role"}
		}
		changes = append(changes, "role assigned")
	}

	_, err = p.accounts.GetProfile(ctx, user.ID)
	switch {
	case errors.Is(err, users.ErrNotFound):
		profile := seed.profile()
		profile.UserID = user.ID
		if err := p.accounts.UpsertProfile(ctx, profile); err != nil {
			p.logger.Errorw("profile creation failed", "email", email, "error", err)
			return Result{Email: email, Status: StatusError, Message: "Could not create profile"}
		}
		changes = append(changes, "profile created")
	case err != nil:
		p.logger.Errorw("profile check failed", "email", email, "error", err)
		return Result{Email: email, Status: StatusError, Message: "Could not check profile"}
	}

	if len(changes) == 0 {
		return Result{Email: email, Status: StatusExisting, Message: "User already exists"}
	}

	p.logger.Infow("test user updated", "email", email, "changes", changes)
	return Result{Email: email, Status: StatusUpdated, Message: "User updated: " + joinChanges(changes)}
}

func (p *Provisioner) sendCredentials(seed Seed, email, plain string) {
	if p.mailer == nil {
		return
	}

	vars := struct {
		Username string
		Email    string
		Role     string
		Password string
	}{
		Username: seed.FirstName,
		Email:    email,
		Role:     roles.Lookup(string(seed.Role)).Name,
		Password: plain,
	}

	status, err := p.mailer.Send(mailer.CredentialsTemplate, seed.FirstName, email, vars)
	if err != nil {
		p.logger.Errorw("error sending credentials email", "email", email, "error", err)
		return
	}
	p.logger.Infow("credentials email sent", "email", email, "status code", status)
}

func (s Seed) profile() *users.Profile {
	return &users.Profile{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		IDNumber:  optional(s.IDNumber),
		Phone:     optional(s.Phone),
		Address:   optional(s.Address),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func joinChanges(changes []string) string {
	out := ""
	for i, c := range changes {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

const (
	passwordLength   = 16
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%*"
)

// GeneratePassword returns a random password drawn from an alphabet without
// look-alike characters.
func GeneratePassword(n int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
