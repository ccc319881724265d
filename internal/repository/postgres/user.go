package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// UserRepository implements repository.UserRepository and
// repository.ProfileRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and their profile in a single transaction.
func (r *UserRepository) Create(ctx context.Context, u *domain.User, p *domain.Profile) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			if database.PgErrorCode(err) == database.CodeUniqueViolation {
				return apperrors.AlreadyExists("user", "email", u.Email)
			}
			return fmt.Errorf("insert user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, full_name, phone, address_line1, address_line2, city, state,
				postal_code, country, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.UserID, p.FullName, p.Phone, p.AddressLine1, p.AddressLine2, p.City, p.State,
			p.PostalCode, p.Country, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// List returns a page of users, newest first, and the total count.
func (r *UserRepository) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`, count(*) OVER() AS total_count
		FROM users
		ORDER BY created_at DESC, id ASC
		LIMIT $1 OFFSET $2`, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var (
		users = []domain.User{}
		total int
	)
	for rows.Next() {
		var row userRow
		if err := rows.Scan(append(row.targets(), &total)...); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, userFromRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) get(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var row userRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.targets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u := userFromRow(row)
	return &u, nil
}

// GetByUserID retrieves a user's profile.
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var row profileRow
	err := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID).
		Scan(row.targets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("profile", userID)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p := profileFromRow(row)
	return &p, nil
}

// Update stores every profile field.
func (r *UserRepository) Update(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now().UTC()

	ct, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET full_name = $1, phone = $2, address_line1 = $3, address_line2 = $4, city = $5,
		    state = $6, postal_code = $7, country = $8, updated_at = $9
		WHERE user_id = $10`,
		p.FullName, p.Phone, p.AddressLine1, p.AddressLine2, p.City,
		p.State, p.PostalCode, p.Country, p.UpdatedAt, p.UserID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("profile", p.UserID)
	}
	return nil
}
