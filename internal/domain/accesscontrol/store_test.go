package accesscontrol_test

import (
	"context"
	"testing"

	"transitcoop/internal/db/dbtest"
	"transitcoop/internal/domain/accesscontrol"
	"transitcoop/internal/domain/users"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_RolesAndSelection(t *testing.T) {
	pool := dbtest.NewPool(t)
	ctx := context.Background()

	u := &users.User{Email: "multi@coop.test", IsActive: true}
	require.NoError(t, u.Password.Set("secret123"))
	require.NoError(t, users.NewRepository(pool).CreateWithProfile(ctx, u, &users.Profile{}, "manager"))

	repo := accesscontrol.NewRepository(pool)

	require.NoError(t, repo.AssignRole(ctx, u.ID, roles.RolePartner))
	require.NoError(t, repo.AssignRole(ctx, u.ID, roles.RolePartner), "assigning twice is a no-op")

	has, err := repo.UserHasRole(ctx, u.ID, roles.RolePartner)
	require.NoError(t, err)
	assert.True(t, has)

	sel, err := repo.GetSelection(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.RoleManager, sel.Active())
	assert.ElementsMatch(t, []roles.Role{roles.RoleManager, roles.RolePartner}, sel.Assigned())
	assert.True(t, sel.Switchable())

	next, err := repo.SetActiveRole(ctx, u.ID, roles.RolePartner)
	require.NoError(t, err)
	assert.Equal(t, roles.RolePartner, next.Active())

	sel, err = repo.GetSelection(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.RolePartner, sel.Active())

	_, err = repo.SetActiveRole(ctx, u.ID, roles.RoleAdministrator)
	assert.ErrorIs(t, err, roles.ErrRoleNotAssigned)

	require.NoError(t, repo.RemoveRole(ctx, u.ID, roles.RolePartner))
	assert.ErrorIs(t, repo.RemoveRole(ctx, u.ID, roles.RolePartner), roles.ErrRoleNotAssigned)

	// the stored active role is no longer assigned, so the selection falls back
	sel, err = repo.GetSelection(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.RoleManager, sel.Active())
}

func TestRepository_GetSelectionUnknownAccount(t *testing.T) {
	pool := dbtest.NewPool(t)
	repo := accesscontrol.NewRepository(pool)

	_, err := repo.GetSelection(context.Background(), uuid.New())
	assert.ErrorIs(t, err, accesscontrol.ErrAccountNotFound)
}
