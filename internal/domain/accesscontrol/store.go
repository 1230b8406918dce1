package accesscontrol

import (
	"context"
	"errors"
	"fmt"

	"transitcoop/internal/roles"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAccountNotFound = errors.New("account not found")

type Store interface {
	AssignRole(ctx context.Context, userID uuid.UUID, role roles.Role) error
	RemoveRole(ctx context.Context, userID uuid.UUID, role roles.Role) error
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]roles.Role, error)
	UserHasRole(ctx context.Context, userID uuid.UUID, role roles.Role) (bool, error)
	GetSelection(ctx context.Context, userID uuid.UUID) (roles.Selection, error)
	SetActiveRole(ctx context.Context, userID uuid.UUID, role roles.Role) (roles.Selection, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) AssignRole(ctx context.Context, userID uuid.UUID, role roles.Role) error {
	query := `
        INSERT INTO user_roles (user_id, role)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, userID, string(role))
	return err
}

func (r *Repository) RemoveRole(ctx context.Context, userID uuid.UUID, role roles.Role) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`
	result, err := r.db.Exec(ctx, query, userID, string(role))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: user_id=%s role=%s", roles.ErrRoleNotAssigned, userID, role)
	}
	return nil
}

func (r *Repository) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]roles.Role, error) {
	query := `
        SELECT role
        FROM user_roles
        WHERE user_id = $1
        ORDER BY assigned_at, role
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []roles.Role{}
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		out = append(out, roles.Role(role))
	}
	return out, rows.Err()
}

func (r *Repository) UserHasRole(ctx context.Context, userID uuid.UUID, role roles.Role) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
        )
    `
	err := r.db.QueryRow(ctx, query, userID, string(role)).Scan(&exists)
	return exists, err
}

// GetSelection loads the assigned roles and the stored active role.
func (r *Repository) GetSelection(ctx context.Context, userID uuid.UUID) (roles.Selection, error) {
	var active *string
	err := r.db.QueryRow(ctx, `SELECT active_role FROM accounts WHERE id = $1`, userID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roles.Selection{}, ErrAccountNotFound
		}
		return roles.Selection{}, fmt.Errorf("get active role: %w", err)
	}

	assigned, err := r.GetUserRoles(ctx, userID)
	if err != nil {
		return roles.Selection{}, fmt.Errorf("get user roles: %w", err)
	}

	var current roles.Role
	if active != nil {
		current = roles.Role(*active)
	}
	return roles.NewSelection(assigned, current), nil
}

// SetActiveRole switches the active role, refusing roles the user does not hold.
func (r *Repository) SetActiveRole(ctx context.Context, userID uuid.UUID, role roles.Role) (roles.Selection, error) {
	sel, err := r.GetSelection(ctx, userID)
	if err != nil {
		return roles.Selection{}, err
	}

	next, err := sel.Switch(role)
	if err != nil {
		return sel, err
	}

	_, err = r.db.Exec(ctx, `UPDATE accounts SET active_role = $1, updated_at = NOW() WHERE id = $2`, string(role), userID)
	if err != nil {
		return sel, fmt.Errorf("set active role: %w", err)
	}
	return next, nil
}
