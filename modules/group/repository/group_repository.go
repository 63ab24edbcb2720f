package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"event-registry/core/database"
	"event-registry/core/logger"
	"event-registry/core/params"
	"event-registry/modules/group/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const groupColumns = `id, name, participant_count, expected_capacity, tags, created_at, updated_at`

// GroupRepository handles group database operations
type GroupRepository struct {
	DB database.Database
}

// NewGroupRepository creates a new repository instance
func NewGroupRepository(db database.Database) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GroupRepositoryInterface defines the repository contract
type GroupRepositoryInterface interface {
	CreateOrGet(ctx context.Context, group *entity.Group) (*entity.Group, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	GetByName(ctx context.Context, name string) (*entity.Group, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedGroups, error)
	ListAll(ctx context.Context) ([]entity.Group, error)
	IncrementCount(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateOrGet inserts the group if its name is unused and otherwise returns
// the existing row untouched. Two concurrent first calls for the same name
// race on the insert; the unique constraint picks the winner and the loser
// re-reads it, so both callers see the same row.
func (r *GroupRepository) CreateOrGet(ctx context.Context, group *entity.Group) (*entity.Group, bool, error) {
	insert := `
		INSERT INTO groups (id, name, participant_count, expected_capacity, tags)
		VALUES ($1, $2, 0, $3, $4)
		ON CONFLICT (name) DO NOTHING
		RETURNING ` + groupColumns

	var created entity.Group
	err := r.DB.GetContext(ctx, &created, insert, uuid.New(), group.Name, group.ExpectedCapacity, pq.Array(group.Tags))
	if err == nil {
		return &created, true, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("GroupRepository:CreateOrGet", err)
		return nil, false, err
	}

	existing, err := r.GetByName(ctx, group.Name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("group %q vanished after conflicting insert", group.Name)
	}
	return existing, false, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetByID", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) GetByName(ctx context.Context, name string) (*entity.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE name = $1`

	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetByName", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedGroups, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	var whereClause string
	var args []any
	conditions := []string{}
	argIndex := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM groups` + whereClause
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		logger.Error("GroupRepository:List - count", err)
		return nil, err
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM groups%s ORDER BY name LIMIT $%d OFFSET $%d`,
		groupColumns, whereClause, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	var groups []entity.Group
	if err := r.DB.SelectContext(ctx, &groups, listQuery, args...); err != nil {
		logger.Error("GroupRepository:List", err)
		return nil, err
	}

	return &entity.PaginatedGroups{
		Items:      groups,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// ListAll returns every group ordered by its natural key. Used by the change
// feed to build full-collection snapshots.
func (r *GroupRepository) ListAll(ctx context.Context) ([]entity.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY name`

	var groups []entity.Group
	if err := r.DB.SelectContext(ctx, &groups, query); err != nil {
		logger.Error("GroupRepository:ListAll", err)
		return nil, err
	}
	return groups, nil
}

func (r *GroupRepository) IncrementCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE groups
		SET participant_count = participant_count + $2, updated_at = now()
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, delta); err != nil {
		logger.Error("GroupRepository:IncrementCount", err)
		return err
	}
	return nil
}

// Delete detaches every member and removes the group in one transaction.
func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("GroupRepository:Delete - begin", err)
		return err
	}
	defer tx.Rollback()

	detach := `
		UPDATE participants
		SET group_id = NULL, group_name = NULL, updated_at = now()
		WHERE group_id = $1
	`
	if _, err := tx.ExecContext(ctx, detach, id); err != nil {
		logger.Error("GroupRepository:Delete - detach", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		logger.Error("GroupRepository:Delete", err)
		return err
	}

	return tx.Commit()
}
