package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"event-registry/core/database"
	"event-registry/core/logger"
	"event-registry/core/params"
	"event-registry/modules/room/entity"

	"github.com/google/uuid"
)

const roomColumns = `id, room_number, max_capacity, current_occupancy, gender, room_type, created_at, updated_at`

// RoomRepository handles room database operations
type RoomRepository struct {
	DB database.Database
}

// NewRoomRepository creates a new repository instance
func NewRoomRepository(db database.Database) *RoomRepository {
	return &RoomRepository{DB: db}
}

// RoomRepositoryInterface defines the repository contract
type RoomRepositoryInterface interface {
	CreateOrGet(ctx context.Context, room *entity.Room) (*entity.Room, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetByNumber(ctx context.Context, number string) (*entity.Room, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedRooms, error)
	ListAll(ctx context.Context) ([]entity.Room, error)
	IncrementOccupancy(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateOrGet inserts the room if its number is unused and otherwise returns
// the existing row untouched. The unique constraint on room_number resolves
// concurrent first creations; the loser re-reads the winner.
func (r *RoomRepository) CreateOrGet(ctx context.Context, room *entity.Room) (*entity.Room, bool, error) {
	insert := `
		INSERT INTO rooms (id, room_number, max_capacity, current_occupancy, gender, room_type)
		VALUES ($1, $2, $3, 0, $4, $5)
		ON CONFLICT (room_number) DO NOTHING
		RETURNING ` + roomColumns

	var created entity.Room
	err := r.DB.GetContext(ctx, &created, insert, uuid.New(), room.RoomNumber, room.MaxCapacity, room.Gender, room.RoomType)
	if err == nil {
		return &created, true, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("RoomRepository:CreateOrGet", err)
		return nil, false, err
	}

	existing, err := r.GetByNumber(ctx, room.RoomNumber)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("room %q vanished after conflicting insert", room.RoomNumber)
	}
	return existing, false, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	var room entity.Room
	err := r.DB.GetContext(ctx, &room, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RoomRepository:GetByID", err)
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) GetByNumber(ctx context.Context, number string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_number = $1`

	var room entity.Room
	err := r.DB.GetContext(ctx, &room, query, number)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RoomRepository:GetByNumber", err)
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedRooms, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	var whereClause string
	var args []any
	conditions := []string{}
	argIndex := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("room_number ILIKE $%d", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM rooms` + whereClause
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		logger.Error("RoomRepository:List - count", err)
		return nil, err
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM rooms%s ORDER BY room_number LIMIT $%d OFFSET $%d`,
		roomColumns, whereClause, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	var rooms []entity.Room
	if err := r.DB.SelectContext(ctx, &rooms, listQuery, args...); err != nil {
		logger.Error("RoomRepository:List", err)
		return nil, err
	}

	return &entity.PaginatedRooms{
		Items:      rooms,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// ListAll returns every room ordered by its natural key. Used by the change
// feed to build full-collection snapshots.
func (r *RoomRepository) ListAll(ctx context.Context) ([]entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY room_number`

	var rooms []entity.Room
	if err := r.DB.SelectContext(ctx, &rooms, query); err != nil {
		logger.Error("RoomRepository:ListAll", err)
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) IncrementOccupancy(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE rooms
		SET current_occupancy = current_occupancy + $2, updated_at = now()
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, delta); err != nil {
		logger.Error("RoomRepository:IncrementOccupancy", err)
		return err
	}
	return nil
}

// Delete detaches every occupant and removes the room in one transaction.
func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("RoomRepository:Delete - begin", err)
		return err
	}
	defer tx.Rollback()

	detach := `
		UPDATE participants
		SET room_id = NULL, room_number = NULL, updated_at = now()
		WHERE room_id = $1
	`
	if _, err := tx.ExecContext(ctx, detach, id); err != nil {
		logger.Error("RoomRepository:Delete - detach", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		logger.Error("RoomRepository:Delete", err)
		return err
	}

	return tx.Commit()
}
