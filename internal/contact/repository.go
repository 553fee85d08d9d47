// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/coverdrive/academy/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	Update(ctx context.Context, c *Contact) error
	SetArchived(ctx context.Context, id string, archived bool) error
	List(ctx context.Context, params ListContactsParams) ([]Contact, int, error)
}

const contactColumns = `
	id, name, email, phone, subject, message, category, priority,
	status, tags, responses, follow_up_date, is_archived,
	created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (
			id, name, email, phone, subject, message, category,
			priority, status, tags, responses, follow_up_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Subject,
		c.Message,
		c.Category,
		c.Priority,
		c.Status,
		c.Tags,
		c.Responses,
		c.FollowUpDate,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Contact, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM contacts WHERE id = $1`,
		contactColumns,
	)

	var c Contact
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Contact) error {
	query := `
		UPDATE contacts
		SET priority = $2, status = $3, tags = $4, responses = $5,
			follow_up_date = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.Priority,
		c.Status,
		c.Tags,
		c.Responses,
		c.FollowUpDate,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}

	return nil
}

func (r *repository) SetArchived(
	ctx context.Context,
	id string,
	archived bool,
) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE contacts
		SET is_archived = $2, updated_at = NOW()
		WHERE id = $1`,
		id, archived,
	)
	if err != nil {
		return fmt.Errorf("archive contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive contact: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("archive contact: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListContactsParams,
) ([]Contact, int, error) {
	conditions := []string{}
	var args []any
	argPos := 1

	if !params.IncludeArchived {
		conditions = append(conditions, "is_archived = false")
	}

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
	addFilter("priority", params.Priority)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM contacts %s`,
		whereClause,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		contactColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, params.PerPage, params.Offset())

	var contacts []Contact
	if err := r.db.SelectContext(ctx, &contacts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, total, nil
}
