package provisioning

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"transitcoop/internal/domain/users"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccounts struct {
	byEmail   map[string]*users.User
	profiles  map[uuid.UUID]*users.Profile
	roles     *fakeRoles
	failEmail string
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*users.User, error) {
	if u, ok := f.byEmail[users.NormalizeEmail(email)]; ok {
		return u, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeAccounts) GetProfile(_ context.Context, id uuid.UUID) (*users.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeAccounts) CreateWithProfile(_ context.Context, u *users.User, p *users.Profile, role string) error {
	if u.Email == f.failEmail {
		return errors.New("insert failed")
	}
	u.ID = uuid.New()
	f.byEmail[u.Email] = u
	p.UserID = u.ID
	f.profiles[u.ID] = p
	f.roles.assigned[u.ID] = append(f.roles.assigned[u.ID], roles.Role(role))
	return nil
}

func (f *fakeAccounts) UpsertProfile(_ context.Context, p *users.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

type fakeRoles struct {
	assigned map[uuid.UUID][]roles.Role
}

func (f *fakeRoles) UserHasRole(_ context.Context, id uuid.UUID, role roles.Role) (bool, error) {
	for _, r := range f.assigned[id] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoles) AssignRole(_ context.Context, id uuid.UUID, role roles.Role) error {
	f.assigned[id] = append(f.assigned[id], role)
	return nil
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(_, _, email string, _ any) (int, error) {
	m.sent = append(m.sent, email)
	return 200, nil
}

func newFakes() (*fakeAccounts, *fakeRoles) {
	r := &fakeRoles{assigned: map[uuid.UUID][]roles.Role{}}
	a := &fakeAccounts{
		byEmail:  map[string]*users.User{},
		profiles: map[uuid.UUID]*users.Profile{},
		roles:    r,
	}
	return a, r
}

func TestDefaultRoster_OnePerRole(t *testing.T) {
	roster := DefaultRoster("demo.test")
	require.Len(t, roster, len(roles.All()))
	assert.Equal(t, "administrator@demo.test", roster[0].Email)
	assert.Equal(t, roles.RoleAdministrator, roster[0].Role)
}

func TestProvisioner_CreatesThenReportsExisting(t *testing.T) {
	accounts, rs := newFakes()
	mail := &recordingMailer{}
	roster := DefaultRoster("demo.test")[:2]
	p := NewProvisioner(accounts, rs, mail, roster, zap.NewNop().Sugar())

	first, err := p.Invoke(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Results, 2)
	for _, r := range first.Results {
		assert.Equal(t, StatusCreated, r.Status)
		require.NotNil(t, r.Credentials)
		assert.Equal(t, passwordLength, len(r.Credentials.Password))
	}
	assert.Equal(t, Summary{Total: 2, Created: 2}, first.Summary)
	assert.Len(t, mail.sent, 2)

	second, err := p.Invoke(context.Background())
	require.NoError(t, err)
	for _, r := range second.Results {
		assert.Equal(t, StatusExisting, r.Status)
		assert.Nil(t, r.Credentials)
	}
	assert.Equal(t, ToneNeutral, Notify(Derive(*second)).Tone)
}

func TestProvisioner_CompletesPartialAccount(t *testing.T) {
	accounts, rs := newFakes()
	id := uuid.New()
	accounts.byEmail["driver@demo.test"] = &users.User{ID: id, Email: "Driver@Demo.test"}

	seed := Seed{Email: "driver@demo.test", Role: roles.RoleDriver, FirstName: "Test", LastName: "Driver"}
	p := NewProvisioner(accounts, rs, nil, []Seed{seed}, zap.NewNop().Sugar())

	resp, err := p.Invoke(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, StatusUpdated, resp.Results[0].Status)
	assert.Equal(t, "driver@demo.test", resp.Results[0].Email)
	assert.Contains(t, rs.assigned[id], roles.RoleDriver)
	assert.Contains(t, accounts.profiles, id)
	assert.Equal(t, Summary{Total: 1, Existing: 1}, resp.Summary)
}

func TestProvisioner_PerAccountErrorsDoNotAbort(t *testing.T) {
	accounts, rs := newFakes()
	accounts.failEmail = "manager@demo.test"
	roster := DefaultRoster("demo.test")
	p := NewProvisioner(accounts, rs, nil, roster, zap.NewNop().Sugar())

	resp, err := p.Invoke(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Results, len(roster))
	assert.Equal(t, 1, resp.Summary.Errors)
	assert.Equal(t, len(roster)-1, resp.Summary.Created)
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword(24)
	require.NoError(t, err)
	b, err := GeneratePassword(24)
	require.NoError(t, err)

	assert.Equal(t, 24, utf8.RuneCountInString(a))
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "0")
	assert.NotContains(t, a, "O")
}
