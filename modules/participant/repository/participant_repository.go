package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"event-registry/core/database"
	"event-registry/core/logger"
	"event-registry/core/params"
	"event-registry/modules/participant/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrEmailExists reports a direct create with an email that is already
// registered. Surfaced distinctly so callers can offer "use existing" flows.
var ErrEmailExists = errors.New("participant email already exists")

const participantColumns = `id, name, email, phone, gender, age, ward, stake,
	group_id, group_name, room_id, room_number, is_paid, metadata, created_at, updated_at`

// ParticipantRepository handles participant database operations
type ParticipantRepository struct {
	DB database.Database
}

// NewParticipantRepository creates a new repository instance
func NewParticipantRepository(db database.Database) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

// ParticipantRepositoryInterface defines the repository contract
type ParticipantRepositoryInterface interface {
	Create(ctx context.Context, p *entity.Participant) (*entity.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	GetByEmail(ctx context.Context, email string) (*entity.Participant, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Participant, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedParticipants, error)
	ListAll(ctx context.Context) ([]entity.Participant, error)
	Update(ctx context.Context, p *entity.Participant) error
	AddCheckIn(ctx context.Context, c *entity.CheckIn) error
	CloseOpenCheckIn(ctx context.Context, participantID uuid.UUID) (*entity.CheckIn, error)
	GetCheckIns(ctx context.Context, participantID uuid.UUID) ([]entity.CheckIn, error)
}

func (r *ParticipantRepository) Create(ctx context.Context, p *entity.Participant) (*entity.Participant, error) {
	query := `
		INSERT INTO participants (id, name, email, phone, gender, age, ward, stake,
			group_id, group_name, room_id, room_number, is_paid, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + participantColumns

	var created entity.Participant
	err := r.DB.GetContext(ctx, &created, query,
		uuid.New(), p.Name, p.Email, p.Phone, p.Gender, p.Age, p.Ward, p.Stake,
		p.GroupID, p.GroupName, p.RoomID, p.RoomNumber, p.IsPaid, p.Metadata)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailExists
		}
		logger.Error("ParticipantRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

	var p entity.Participant
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetByID", err)
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) GetByEmail(ctx context.Context, email string) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE email = $1`

	var p entity.Participant
	err := r.DB.GetContext(ctx, &p, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetByEmail", err)
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = ANY($1)`

	var participants []entity.Participant
	if err := r.DB.SelectContext(ctx, &participants, query, pq.Array(ids)); err != nil {
		logger.Error("ParticipantRepository:GetByIDs", err)
		return nil, err
	}
	return participants, nil
}

func (r *ParticipantRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedParticipants, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	var whereClause string
	var args []any
	conditions := []string{}
	argIndex := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM participants` + whereClause
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		logger.Error("ParticipantRepository:List - count", err)
		return nil, err
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM participants%s ORDER BY name LIMIT $%d OFFSET $%d`,
		participantColumns, whereClause, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	var participants []entity.Participant
	if err := r.DB.SelectContext(ctx, &participants, listQuery, args...); err != nil {
		logger.Error("ParticipantRepository:List", err)
		return nil, err
	}

	return &entity.PaginatedParticipants{
		Items:      participants,
		TotalItems: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// ListAll returns every participant ordered by name. Used by the change feed
// to build full-collection snapshots.
func (r *ParticipantRepository) ListAll(ctx context.Context) ([]entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY name`

	var participants []entity.Participant
	if err := r.DB.SelectContext(ctx, &participants, query); err != nil {
		logger.Error("ParticipantRepository:ListAll", err)
		return nil, err
	}
	return participants, nil
}

// Update writes scalar fields and metadata. Assignment fields are not
// touched here; those go through the assignment engine's batches.
func (r *ParticipantRepository) Update(ctx context.Context, p *entity.Participant) error {
	query := `
		UPDATE participants
		SET name = $2, email = $3, phone = $4, gender = $5, age = $6,
		    ward = $7, stake = $8, is_paid = $9, metadata = $10, updated_at = now()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.Gender, p.Age, p.Ward, p.Stake, p.IsPaid, p.Metadata)
	if err != nil {
		logger.Error("ParticipantRepository:Update", err)
		return err
	}
	return nil
}

// ===================== Check-ins =====================

func (r *ParticipantRepository) AddCheckIn(ctx context.Context, c *entity.CheckIn) error {
	query := `
		INSERT INTO participant_check_ins (id, participant_id, check_in_time)
		VALUES ($1, $2, $3)
	`
	if err := r.DB.ExecContext(ctx, query, c.ID, c.ParticipantID, c.CheckInTime); err != nil {
		logger.Error("ParticipantRepository:AddCheckIn", err)
		return err
	}
	return nil
}

// CloseOpenCheckIn stamps the most recent open record. Returns nil, nil when
// no record is open.
func (r *ParticipantRepository) CloseOpenCheckIn(ctx context.Context, participantID uuid.UUID) (*entity.CheckIn, error) {
	query := `
		UPDATE participant_check_ins
		SET check_out_time = now()
		WHERE id = (
			SELECT id FROM participant_check_ins
			WHERE participant_id = $1 AND check_out_time IS NULL
			ORDER BY check_in_time DESC
			LIMIT 1
		)
		RETURNING id, participant_id, check_in_time, check_out_time
	`

	var closed entity.CheckIn
	err := r.DB.GetContext(ctx, &closed, query, participantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:CloseOpenCheckIn", err)
		return nil, err
	}
	return &closed, nil
}

func (r *ParticipantRepository) GetCheckIns(ctx context.Context, participantID uuid.UUID) ([]entity.CheckIn, error) {
	query := `
		SELECT id, participant_id, check_in_time, check_out_time
		FROM participant_check_ins
		WHERE participant_id = $1
		ORDER BY check_in_time
	`
	var checkIns []entity.CheckIn
	if err := r.DB.SelectContext(ctx, &checkIns, query, participantID); err != nil {
		logger.Error("ParticipantRepository:GetCheckIns", err)
		return nil, err
	}
	return checkIns, nil
}
