package users

import (
	"context"
	"errors"
	"fmt"

	"transitcoop/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	GetByID(context.Context, uuid.UUID) (*User, error)
	GetByEmail(context.Context, string) (*User, error)
	Create(ctx context.Context, tx pgx.Tx, user *User) error
	CreateWithProfile(ctx context.Context, user *User, profile *Profile, role string) error
	GetProfile(context.Context, uuid.UUID) (*Profile, error)
	UpsertProfile(context.Context, *Profile) error
	Delete(context.Context, uuid.UUID) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const uniqueViolation = "23505"

func (r *Repository) Create(ctx context.Context, tx pgx.Tx, user *User) error {
	query := `
	  INSERT INTO accounts (id, email, password, is_active)
	  VALUES ($1, $2, $3, $4)
	  RETURNING created_at, updated_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = NormalizeEmail(user.Email)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := tx.QueryRow(
		ctx, query, user.ID, user.Email, user.Password.hash, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// CreateWithProfile inserts the account, its profile and its first role in
// one transaction.
func (r *Repository) CreateWithProfile(ctx context.Context, user *User, profile *Profile, role string) error {
	return database.WithTx(r.db, ctx, func(tx pgx.Tx) error {
		if err := r.Create(ctx, tx, user); err != nil {
			return err
		}

		profile.UserID = user.ID
		if err := upsertProfile(ctx, tx, profile); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, user.ID, role)
		if err != nil {
			return fmt.Errorf("assign role: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE accounts SET active_role = $1 WHERE id = $2`, role, user.ID)
		if err != nil {
			return fmt.Errorf("set active role: %w", err)
		}
		user.ActiveRole = &role
		return nil
	})
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, email, password, active_role, is_active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByEmail matches case-insensitively; callers need not normalise.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, password, active_role, is_active, created_at, updated_at
		FROM accounts
		WHERE lower(email) = $1
	`
	return r.getOne(ctx, query, NormalizeEmail(email))
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Password.hash,
		&user.ActiveRole,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `
		SELECT user_id, first_name, last_name, id_number, phone, address
		FROM profiles
		WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Profile{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.IDNumber,
		&p.Phone,
		&p.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *Repository) UpsertProfile(ctx context.Context, p *Profile) error {
	return upsertProfile(ctx, r.db, p)
}

func upsertProfile(ctx context.Context, q database.Querier, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, first_name, last_name, id_number, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			id_number  = EXCLUDED.id_number,
			phone      = EXCLUDED.phone,
			address    = EXCLUDED.address,
			updated_at = NOW()
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := q.Exec(ctx, query, p.UserID, p.FirstName, p.LastName, p.IDNumber, p.Phone, p.Address)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
