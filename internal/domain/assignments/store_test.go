package assignments_test

import (
	"context"
	"testing"

	"transitcoop/internal/db/dbtest"
	"transitcoop/internal/domain/assignments"
	"transitcoop/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ResetDaily(t *testing.T) {
	pool := dbtest.NewPool(t)
	ctx := context.Background()

	u := &users.User{Email: "driver@coop.test", IsActive: true}
	require.NoError(t, u.Password.Set("secret123"))
	require.NoError(t, users.NewRepository(pool).CreateWithProfile(ctx, u, &users.Profile{FirstName: "Dario"}, "driver"))

	assigned := uuid.New()
	_, err := pool.Exec(ctx, `INSERT INTO buses (id, plate, driver_id, official_id) VALUES ($1, 'PBA-1001', $2, $2)`, assigned, u.ID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO buses (id, plate) VALUES ($1, 'PBA-1002')`, uuid.New())
	require.NoError(t, err)

	repo := assignments.NewRepository(pool)

	released, err := repo.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	var driverID *uuid.UUID
	require.NoError(t, pool.QueryRow(ctx, `SELECT driver_id FROM buses WHERE id = $1`, assigned).Scan(&driverID))
	assert.Nil(t, driverID)

	var history int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM bus_assignment_history WHERE bus_id = $1`, assigned).Scan(&history))
	assert.Equal(t, 1, history)

	released, err = repo.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Zero(t, released, "a second run finds nothing to release")
}
