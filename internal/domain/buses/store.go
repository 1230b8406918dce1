package buses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = time.Second * 5

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) ListByStatus(ctx context.Context, status Status, limit int) ([]Bus, error) {
	query := `
		SELECT
			b.id, b.plate, b.alias, b.image_url, b.status,
			o.user_id, o.first_name, o.last_name,
			d.user_id, d.first_name, d.last_name,
			f.user_id, f.first_name, f.last_name
		FROM buses b
		LEFT JOIN profiles o ON o.user_id = b.owner_id
		LEFT JOIN profiles d ON d.user_id = b.driver_id
		LEFT JOIN profiles f ON f.user_id = b.official_id
		WHERE b.status = $1
		ORDER BY COALESCE(b.alias, b.plate)
		LIMIT $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	defer rows.Close()

	out := make([]Bus, 0, limit)
	for rows.Next() {
		var (
			b                    Bus
			st                   string
			ownerID, driverID    *uuid.UUID
			officialID           *uuid.UUID
			ownerF, ownerL       *string
			driverF, driverL     *string
			officialF, officialL *string
		)
		if err := rows.Scan(
			&b.ID, &b.Plate, &b.Alias, &b.ImageURL, &st,
			&ownerID, &ownerF, &ownerL,
			&driverID, &driverF, &driverL,
			&officialID, &officialF, &officialL,
		); err != nil {
			return nil, fmt.Errorf("scan bus: %w", err)
		}
		b.Status = Status(st)
		b.Owner = person(ownerID, ownerF, ownerL)
		b.Driver = person(driverID, driverF, driverL)
		b.Official = person(officialID, officialF, officialL)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func person(id *uuid.UUID, first, last *string) *Person {
	if id == nil {
		return nil
	}
	p := &Person{ID: *id}
	if first != nil {
		p.FirstName = *first
	}
	if last != nil {
		p.LastName = *last
	}
	return p
}
