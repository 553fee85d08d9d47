// AngelaMos | 2026
// repository.go

package student

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
	Create(ctx context.Context, s *Student) error
	GetByID(ctx context.Context, id string) (*Student, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListStudentsParams) ([]Student, int, error)
}

const studentColumns = `
	id, first_name, last_name, email, phone, date_of_birth,
	guardian_name, guardian_phone, address, program_id, status,
	payments, joined_at, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Student) error {
	query := `
		INSERT INTO students (
			id, first_name, last_name, email, phone, date_of_birth,
			guardian_name, guardian_phone, address, program_id, status,
			payments, joined_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		s.DateOfBirth,
		s.GuardianName,
		s.GuardianPhone,
		s.Address,
		s.ProgramID,
		s.Status,
		s.Payments,
		s.JoinedAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create student: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Student, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM students WHERE id = $1`,
		studentColumns,
	)

	var s Student
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get student: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Student) error {
	query := `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
			date_of_birth = $6, guardian_name = $7, guardian_phone = $8,
			address = $9, program_id = $10, status = $11, payments = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		s.DateOfBirth,
		s.GuardianName,
		s.GuardianPhone,
		s.Address,
		s.ProgramID,
		s.Status,
		s.Payments,
	).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update student: %w", core.ErrNotFound)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("update student: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update student: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM students WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete student: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListStudentsParams,
) ([]Student, int, error) {
	var conditions []string
	var args []any
	argPos := 1

	if params.Status != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("status = $%d", argPos),
		)
		args = append(args, params.Status)
		argPos++
	}

	if params.ProgramID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("program_id = $%d", argPos),
		)
		args = append(args, params.ProgramID)
		argPos++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM students %s`,
		whereClause,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM students
		%s
		ORDER BY last_name ASC, first_name ASC
		LIMIT $%d OFFSET $%d`,
		studentColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, params.PerPage, params.Offset())

	var students []Student
	if err := r.db.SelectContext(ctx, &students, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	return students, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
