package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"transitcoop/internal/auth"
	"transitcoop/internal/domain/buses"
	"transitcoop/internal/domain/storage"
	"transitcoop/internal/domain/users"
	"transitcoop/internal/fleet"
	"transitcoop/internal/lookup"
	"transitcoop/internal/provisioning"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testServiceKey = "test-service-key"

type fakeUsers struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*users.User
	profiles map[uuid.UUID]*users.Profile
	access   *fakeAccessControl
	err      error
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.accounts[id]; ok {
		return u, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.accounts {
		if users.NormalizeEmail(u.Email) == users.NormalizeEmail(email) {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) Create(context.Context, pgx.Tx, *users.User) error {
	return errors.New("not supported")
}

func (f *fakeUsers) CreateWithProfile(ctx context.Context, u *users.User, p *users.Profile, role string) error {
	f.mu.Lock()
	u.ID = uuid.New()
	f.accounts[u.ID] = u
	p.UserID = u.ID
	f.profiles[u.ID] = p
	f.mu.Unlock()

	return f.access.AssignRole(ctx, u.ID, roles.Role(role))
}

func (f *fakeUsers) GetProfile(_ context.Context, id uuid.UUID) (*users.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) UpsertProfile(_ context.Context, p *users.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
	return nil
}

type fakeAccessControl struct {
	mu       sync.Mutex
	assigned map[uuid.UUID][]roles.Role
	active   map[uuid.UUID]roles.Role
}

func (f *fakeAccessControl) AssignRole(_ context.Context, id uuid.UUID, role roles.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assigned[id] = append(f.assigned[id], role)
	return nil
}

func (f *fakeAccessControl) RemoveRole(context.Context, uuid.UUID, roles.Role) error {
	return nil
}

func (f *fakeAccessControl) GetUserRoles(_ context.Context, id uuid.UUID) ([]roles.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]roles.Role{}, f.assigned[id]...), nil
}

func (f *fakeAccessControl) UserHasRole(_ context.Context, id uuid.UUID, role roles.Role) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.assigned[id] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccessControl) GetSelection(_ context.Context, id uuid.UUID) (roles.Selection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return roles.NewSelection(f.assigned[id], f.active[id]), nil
}

func (f *fakeAccessControl) SetActiveRole(ctx context.Context, id uuid.UUID, role roles.Role) (roles.Selection, error) {
	sel, _ := f.GetSelection(ctx, id)
	next, err := sel.Switch(role)
	if err != nil {
		return sel, err
	}
	f.mu.Lock()
	f.active[id] = role
	f.mu.Unlock()
	return next, nil
}

type fakeBuses struct {
	list []buses.Bus
	err  error
}

func (f *fakeBuses) ListByStatus(context.Context, buses.Status, int) ([]buses.Bus, error) {
	return f.list, f.err
}

type fakeAssignments struct {
	n   int64
	err error
}

func (f *fakeAssignments) ResetDaily(context.Context) (int64, error) {
	return f.n, f.err
}

type testEnv struct {
	app         *application
	users       *fakeUsers
	access      *fakeAccessControl
	buses       *fakeBuses
	assignments *fakeAssignments
	mux         http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop().Sugar()
	access := &fakeAccessControl{
		assigned: map[uuid.UUID][]roles.Role{},
		active:   map[uuid.UUID]roles.Role{},
	}
	env := &testEnv{
		users: &fakeUsers{
			accounts: map[uuid.UUID]*users.User{},
			profiles: map[uuid.UUID]*users.Profile{},
			access:   access,
		},
		access:      access,
		buses:       &fakeBuses{},
		assignments: &fakeAssignments{},
	}

	store := &storage.Container{
		Users:         env.users,
		AccessControl: env.access,
		Buses:         env.buses,
		Assignments:   env.assignments,
	}

	provisioner := provisioning.NewProvisioner(store.Users, store.AccessControl, nil,
		provisioning.DefaultRoster("demo.test")[:2], logger)

	env.app = &application{
		config: config{
			env:        "test",
			location:   time.UTC,
			serviceKey: testServiceKey,
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "admin"},
			},
		},
		store:         store,
		logger:        logger,
		authenticator: auth.NewJWTAuthenticator("test-secret", "test-refresh", "transitcoop", "transitcoop"),
		fleet:         fleet.NewProvider(env.buses, nil, logger),
		lookup:        lookup.NewService(store.Users, store.AccessControl, logger),
		provisioner:   provisioner,
		provisioning:  provisioner,
	}
	env.mux = env.app.mount()

	return env
}

// addUser stores an active account with the given roles and returns it.
func (e *testEnv) addUser(t *testing.T, email, password string, assigned ...roles.Role) *users.User {
	t.Helper()

	u := &users.User{ID: uuid.New(), Email: email, IsActive: true}
	require.NoError(t, u.Password.Set(password))
	e.users.accounts[u.ID] = u
	e.access.assigned[u.ID] = assigned
	return u
}

func (e *testEnv) tokenFor(t *testing.T, u *users.User) string {
	t.Helper()

	sel, err := e.access.GetSelection(context.Background(), u.ID)
	require.NoError(t, err)
	access, _, err := e.app.authenticator.GenerateTokens(u.ID, roles.ToStrings(sel.Assigned()), string(sel.Active()))
	require.NoError(t, err)
	return access
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

func functionRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("apikey", testServiceKey)
	req.Header.Set("Content-Type", "application/json")
	return req
}
