package buses_test

import (
	"context"
	"testing"

	"transitcoop/internal/db/dbtest"
	"transitcoop/internal/domain/buses"
	"transitcoop/internal/domain/users"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPerson(t *testing.T, pool *pgxpool.Pool, email, first, last string) uuid.UUID {
	t.Helper()
	u := &users.User{Email: email, IsActive: true}
	require.NoError(t, u.Password.Set("secret123"))
	require.NoError(t, users.NewRepository(pool).CreateWithProfile(context.Background(), u,
		&users.Profile{FirstName: first, LastName: last}, "partner"))
	return u.ID
}

func seedBus(t *testing.T, pool *pgxpool.Pool, plate string, alias *string, status buses.Status, owner, driver *uuid.UUID) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO buses (id, plate, alias, status, owner_id, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), plate, alias, string(status), owner, driver)
	require.NoError(t, err)
}

func TestRepository_ListByStatus(t *testing.T) {
	pool := dbtest.NewPool(t)
	ctx := context.Background()

	owner := seedPerson(t, pool, "owner@coop.test", "Olga", "Paz")
	driver := seedPerson(t, pool, "driver@coop.test", "Dario", "Vera")

	alias := "Andes Express"
	seedBus(t, pool, "PBA-1001", &alias, buses.StatusInService, &owner, &driver)
	seedBus(t, pool, "PBA-1002", nil, buses.StatusInService, nil, nil)
	seedBus(t, pool, "PBA-1003", nil, buses.StatusMaintenance, &owner, nil)
	for _, plate := range []string{"PBB-2001", "PBB-2002", "PBB-2003"} {
		seedBus(t, pool, plate, nil, buses.StatusInService, nil, nil)
	}

	repo := buses.NewRepository(pool)
	list, err := repo.ListByStatus(ctx, buses.StatusInService, 4)
	require.NoError(t, err)
	require.Len(t, list, 4)

	first := list[0]
	assert.Equal(t, "Andes Express", first.Title())
	require.NotNil(t, first.Owner)
	assert.Equal(t, "Olga Paz", first.Owner.FullName())
	require.NotNil(t, first.Driver)
	assert.Equal(t, "Dario Vera", first.Driver.FullName())
	assert.Nil(t, first.Official)

	for _, b := range list {
		assert.Equal(t, buses.StatusInService, b.Status)
		assert.NotEqual(t, "PBA-1003", b.Plate)
	}
	assert.Nil(t, list[1].Owner)
}
