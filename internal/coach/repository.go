// AngelaMos | 2026
// repository.go

package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/coverdrive/academy/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Coach) error
	GetByID(ctx context.Context, id string) (*Coach, error)
	Update(ctx context.Context, c *Coach) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListCoachesParams) ([]Coach, int, error)
}

const coachColumns = `
	id, name, email, phone, bio, specializations, certifications,
	experience_years, availability, employment, reviews, rating,
	rating_count, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Coach) error {
	query := `
		INSERT INTO coaches (
			id, name, email, phone, bio, specializations, certifications,
			experience_years, availability, employment, reviews, rating,
			rating_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Bio,
		c.Specializations,
		c.Certifications,
		c.ExperienceYears,
		c.Availability,
		c.Employment,
		c.Reviews,
		c.Rating,
		c.RatingCount,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create coach: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create coach: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Coach, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM coaches WHERE id = $1`,
		coachColumns,
	)

	var c Coach
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get coach: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}

	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Coach) error {
	query := `
		UPDATE coaches
		SET name = $2, email = $3, phone = $4, bio = $5,
			specializations = $6, certifications = $7,
			experience_years = $8, availability = $9, employment = $10,
			reviews = $11, rating = $12, rating_count = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Bio,
		c.Specializations,
		c.Certifications,
		c.ExperienceYears,
		c.Availability,
		c.Employment,
		c.Reviews,
		c.Rating,
		c.RatingCount,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update coach: %w", core.ErrNotFound)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("update coach: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update coach: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM coaches WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete coach: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete coach: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete coach: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCoachesParams,
) ([]Coach, int, error) {
	var conditions []string
	var args []any
	argPos := 1

	if params.Specialization != "" {
		// specializations is a jsonb array of strings
		conditions = append(
			conditions,
			fmt.Sprintf("specializations @> $%d", argPos),
		)
		args = append(args, fmt.Sprintf(`[%q]`, params.Specialization))
		argPos++
	}

	if params.Employment != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("employment = $%d", argPos),
		)
		args = append(args, params.Employment)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM coaches %s`,
		whereClause,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count coaches: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM coaches
		%s
		ORDER BY rating DESC, name ASC
		LIMIT $%d OFFSET $%d`,
		coachColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, params.PerPage, params.Offset())

	var coaches []Coach
	if err := r.db.SelectContext(ctx, &coaches, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list coaches: %w", err)
	}

	return coaches, total, nil
}
