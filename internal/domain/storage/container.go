package storage

import (
	"context"

	"transitcoop/internal/domain/accesscontrol"
	"transitcoop/internal/domain/assignments"
	"transitcoop/internal/domain/buses"
	"transitcoop/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool          *pgxpool.Pool
	Users         users.Store
	AccessControl accesscontrol.Store
	Buses         buses.Store
	Assignments   assignments.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:          db,
		Users:         users.NewRepository(db),
		AccessControl: accesscontrol.NewRepository(db),
		Buses:         buses.NewRepository(db),
		Assignments:   assignments.NewRepository(db),
	}
}

// Ping reports whether the pool can reach the database.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}
	return c.pool.Ping(ctx)
}
