// AngelaMos | 2026
// repository.go

package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/coverdrive/academy/internal/core"
)

type Repository interface {
	Create(ctx context.Context, ident *Identity) error
	GetByID(ctx context.Context, id string) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	Update(ctx context.Context, ident *Identity) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	List(
		ctx context.Context,
		params ListIdentitiesParams,
	) ([]Identity, int, error)

	// RecordFailedLogin applies the lockout transition in one atomic
	// statement: an expired lock resets the counter to 1 and clears the
	// lock; otherwise the counter increments and, at maxAttempts, the
	// lock engages until lockUntil. Two concurrent failures can never
	// both observe the same counter value.
	RecordFailedLogin(
		ctx context.Context,
		id string,
		maxAttempts int,
		lockUntil time.Time,
	) (int, *time.Time, error)

	ResetLockout(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const identityColumns = `
	id, name, email, password_hash, role, permissions, is_active,
	login_attempts, lock_until, token_version, password_changed_at,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, ident *Identity) error {
	query := `
		INSERT INTO identities (
			id, name, email, password_hash, role, permissions, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at, updated_at, password_changed_at, token_version`

	err := r.db.GetContext(ctx, ident, query,
		ident.ID,
		ident.Name,
		ident.Email,
		ident.PasswordHash,
		ident.Role,
		ident.Permissions,
		ident.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create identity: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create identity: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Identity, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM identities WHERE id = $1`,
		identityColumns,
	)

	var ident Identity
	err := r.db.GetContext(ctx, &ident, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get identity: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	return &ident, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Identity, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM identities WHERE email = $1`,
		identityColumns,
	)

	var ident Identity
	err := r.db.GetContext(ctx, &ident, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get identity by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get identity by email: %w", err)
	}

	return &ident, nil
}

func (r *repository) Update(ctx context.Context, ident *Identity) error {
	query := `
		UPDATE identities
		SET name = $2, role = $3, permissions = $4, is_active = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &ident.UpdatedAt, query,
		ident.ID,
		ident.Name,
		ident.Role,
		ident.Permissions,
		ident.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update identity: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update identity: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE identities
		SET password_hash = $2, password_changed_at = NOW(), updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE identities
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListIdentitiesParams,
) ([]Identity, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM identities WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count identities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM identities
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		identityColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var idents []Identity
	if err := r.db.SelectContext(ctx, &idents, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list identities: %w", err)
	}

	return idents, total, nil
}

func (r *repository) RecordFailedLogin(
	ctx context.Context,
	id string,
	maxAttempts int,
	lockUntil time.Time,
) (int, *time.Time, error) {
	query := `
		UPDATE identities
		SET login_attempts = CASE
		        WHEN lock_until IS NOT NULL AND lock_until <= NOW() THEN 1
		        ELSE login_attempts + 1
		    END,
		    lock_until = CASE
		        WHEN lock_until IS NOT NULL AND lock_until <= NOW() THEN NULL
		        WHEN lock_until IS NULL AND login_attempts + 1 >= $2 THEN $3
		        ELSE lock_until
		    END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING login_attempts, lock_until`

	var result struct {
		LoginAttempts int        `db:"login_attempts"`
		LockUntil     *time.Time `db:"lock_until"`
	}

	err := r.db.GetContext(ctx, &result, query, id, maxAttempts, lockUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("record failed login: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("record failed login: %w", err)
	}

	return result.LoginAttempts, result.LockUntil, nil
}

func (r *repository) ResetLockout(ctx context.Context, id string) error {
	query := `
		UPDATE identities
		SET login_attempts = 0, lock_until = NULL, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("reset lockout: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset lockout: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("reset lockout: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
