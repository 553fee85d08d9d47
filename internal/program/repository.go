// AngelaMos | 2026
// repository.go

package program

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
	Create(ctx context.Context, p *Program) error
	GetByID(ctx context.Context, id string) (*Program, error)
	Update(ctx context.Context, p *Program) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListProgramsParams) ([]Program, int, error)

	// Enroll increments current_students iff the program still has room
	// and is not administratively closed. Returns ErrNoCapacity when the
	// guard fails so callers can distinguish "full" from "missing".
	Enroll(ctx context.Context, id string) (*Program, error)
	Unenroll(ctx context.Context, id string) (*Program, error)
}

// ErrNoCapacity means the enrollment guard rejected the update: either
// the program is at capacity or it is inactive/suspended.
var ErrNoCapacity = errors.New("program has no capacity")

const programColumns = `
	id, title, description, age_group, duration, price,
	max_students, current_students, status, level, category,
	schedule_days, schedule_time, venue, start_date, end_date,
	discount, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Program) error {
	query := `
		INSERT INTO programs (
			id, title, description, age_group, duration, price,
			max_students, current_students, status, level, category,
			schedule_days, schedule_time, venue, start_date, end_date, discount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.AgeGroup,
		p.Duration,
		p.Price,
		p.MaxStudents,
		p.CurrentStudents,
		p.Status,
		p.Level,
		p.Category,
		p.ScheduleDays,
		p.ScheduleTime,
		p.Venue,
		p.StartDate,
		p.EndDate,
		p.Discount,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create program: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create program: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Program, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM programs WHERE id = $1`,
		programColumns,
	)

	var p Program
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Program) error {
	query := `
		UPDATE programs
		SET title = $2, description = $3, age_group = $4, duration = $5,
			price = $6, max_students = $7, status = $8, level = $9,
			category = $10, schedule_days = $11, schedule_time = $12,
			venue = $13, start_date = $14, end_date = $15, discount = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING current_students, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.AgeGroup,
		p.Duration,
		p.Price,
		p.MaxStudents,
		p.Status,
		p.Level,
		p.Category,
		p.ScheduleDays,
		p.ScheduleTime,
		p.Venue,
		p.StartDate,
		p.EndDate,
		p.Discount,
	).Scan(&p.CurrentStudents, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update program: %w", core.ErrNotFound)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("update program: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update program: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM programs WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete program: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListProgramsParams,
) ([]Program, int, error) {
	var conditions []string
	var args []any
	argPos := 1

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(
			conditions,
			fmt.Sprintf("%s = $%d", column, argPos),
		)
		args = append(args, value)
		argPos++
	}

	addFilter("status", params.Status)
	addFilter("category", params.Category)
	addFilter("level", params.Level)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM programs %s`,
		whereClause,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count programs: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM programs
		%s
		ORDER BY start_date ASC, title ASC
		LIMIT $%d OFFSET $%d`,
		programColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, params.PerPage, params.Offset())

	var programs []Program
	if err := r.db.SelectContext(ctx, &programs, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list programs: %w", err)
	}

	return programs, total, nil
}

func (r *repository) Enroll(
	ctx context.Context,
	id string,
) (*Program, error) {
	// Single guarded statement. Two concurrent enrollments into the last
	// seat serialize on the row lock and the loser fails the guard.
	query := `
		UPDATE programs
		SET current_students = current_students + 1,
			status = CASE
				WHEN current_students + 1 >= max_students THEN 'full'
				ELSE status
			END,
			updated_at = NOW()
		WHERE id = $1
			AND current_students < max_students
			AND status NOT IN ('inactive', 'suspended')
		RETURNING` + programColumns

	var p Program
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("enroll: %w", ErrNoCapacity)
	}
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}

	return &p, nil
}

func (r *repository) Unenroll(
	ctx context.Context,
	id string,
) (*Program, error) {
	query := `
		UPDATE programs
		SET current_students = current_students - 1,
			status = CASE
				WHEN status = 'full' AND current_students - 1 < max_students
					THEN 'active'
				ELSE status
			END,
			updated_at = NOW()
		WHERE id = $1 AND current_students > 0
		RETURNING` + programColumns

	var p Program
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unenroll: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("unenroll: %w", err)
	}

	return &p, nil
}
