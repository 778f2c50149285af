package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
)

const userColumns = `id, email, password_hash, role, name, phone, is_available, vehicle_info, license_number, created_at`

// rowScanner is implemented by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone,
		&u.IsAvailable, &u.VehicleInfo, &u.LicenseNumber, &u.CreatedAt)
	return u, err
}

// UserRepo represents users repository.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// Create inserts u and fills its ID and CreatedAt. A taken email yields apperr.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO users (email, password_hash, role, name, phone, is_available, vehicle_info, license_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `, u.Email, u.PasswordHash, string(u.Role), u.Name, u.Phone, u.IsAvailable, u.VehicleInfo, u.LicenseNumber,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Get returns the user by id or nil if missing.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// GetByEmail returns the user with the given normalized email or nil if missing.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// ListDrivers returns drivers ordered by id.
func (r *UserRepo) ListDrivers(ctx context.Context, f domain.DriverFilter) ([]domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE role = 'driver'`
	if f.AvailableOnly {
		q += ` AND is_available`
	}
	q += ` ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateDriver applies a partial update to a driver and returns the new row,
// or nil when no driver has that id.
func (r *UserRepo) UpdateDriver(ctx context.Context, u domain.PartialDriverUpdate) (*domain.User, error) {
	got, err := scanUser(r.db.QueryRow(ctx, `
        UPDATE users
        SET
            name           = COALESCE($2, name),
            email          = COALESCE($3, email),
            phone          = COALESCE($4, phone),
            vehicle_info   = COALESCE($5, vehicle_info),
            license_number = COALESCE($6, license_number),
            is_available   = COALESCE($7, is_available)
        WHERE id = $1 AND role = 'driver'
        RETURNING `+userColumns,
		u.ID, u.Name, u.Email, u.Phone, u.VehicleInfo, u.LicenseNumber, u.IsAvailable))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		if IsDuplicate(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("update driver %d: %w", u.ID, err)
	}
	return &got, nil
}

// DeleteDriver removes a driver account. It returns false when no driver has that id.
func (r *UserRepo) DeleteDriver(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1 AND role = 'driver'`, id)
	if err != nil {
		return false, fmt.Errorf("delete driver %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
