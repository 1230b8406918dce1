package lookup

import (
	"context"
	"errors"
	"testing"

	"transitcoop/internal/domain/users"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccounts struct {
	byEmail    map[string]*users.User
	profiles   map[uuid.UUID]*users.Profile
	emailErr   error
	profileErr error
	gotEmail   string
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*users.User, error) {
	f.gotEmail = email
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	for k, u := range f.byEmail {
		if users.NormalizeEmail(k) == email {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeAccounts) GetProfile(_ context.Context, id uuid.UUID) (*users.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, users.ErrNotFound
}

type fakeRoles struct {
	roles map[uuid.UUID][]roles.Role
	err   error
}

func (f *fakeRoles) GetUserRoles(_ context.Context, id uuid.UUID) ([]roles.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roles[id], nil
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  USER@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got)

	_, err = NormalizeEmail("no-at-sign")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NormalizeEmail("   ")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLookup_MatchesAnyCasing(t *testing.T) {
	id := uuid.New()
	accounts := &fakeAccounts{
		byEmail:  map[string]*users.User{"User@Example.COM": {ID: id, Email: "User@Example.COM"}},
		profiles: map[uuid.UUID]*users.Profile{id: {UserID: id, FirstName: "Ana", LastName: "Rojas"}},
	}
	rs := &fakeRoles{roles: map[uuid.UUID][]roles.Role{id: {roles.RoleDriver, roles.RoleClient}}}

	svc := NewService(accounts, rs, zap.NewNop().Sugar())
	res, err := svc.Lookup(context.Background(), "  USER@Example.com ")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", accounts.gotEmail)
	assert.True(t, res.Exists)
	assert.Equal(t, id, res.User.ID)
	assert.Equal(t, "user@example.com", res.User.Email)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "Ana", res.Profile.FirstName)
	assert.Equal(t, []string{"driver", "client"}, res.Roles)
}

func TestLookup_NotFound(t *testing.T) {
	svc := NewService(&fakeAccounts{}, &fakeRoles{}, zap.NewNop().Sugar())
	res, err := svc.Lookup(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, res.Exists)
}

func TestLookup_SubLookupFailuresDegrade(t *testing.T) {
	id := uuid.New()
	accounts := &fakeAccounts{
		byEmail:    map[string]*users.User{"a@b.co": {ID: id, Email: "a@b.co"}},
		profileErr: errors.New("profiles table unavailable"),
	}
	rs := &fakeRoles{err: errors.New("roles table unavailable")}

	svc := NewService(accounts, rs, zap.NewNop().Sugar())
	res, err := svc.Lookup(context.Background(), "a@b.co")
	require.NoError(t, err)

	assert.True(t, res.Exists)
	assert.Nil(t, res.Profile)
	assert.NotNil(t, res.Roles)
	assert.Empty(t, res.Roles)
}

func TestLookup_AccountStoreFailureIsReturned(t *testing.T) {
	svc := NewService(&fakeAccounts{emailErr: errors.New("db down")}, &fakeRoles{}, zap.NewNop().Sugar())
	_, err := svc.Lookup(context.Background(), "a@b.co")
	assert.Error(t, err)
}
