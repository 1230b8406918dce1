package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = time.Second * 30

type Store interface {
	// ResetDaily runs the reset procedure and returns how many buses were
	// released from their driver/official assignment.
	ResetDaily(ctx context.Context) (int64, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) ResetDaily(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var released int64
	if err := r.db.QueryRow(ctx, `SELECT reset_daily_bus_assignments()`).Scan(&released); err != nil {
		return 0, fmt.Errorf("reset daily bus assignments: %w", err)
	}
	return released, nil
}
