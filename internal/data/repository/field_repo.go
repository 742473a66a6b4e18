package repository

import (
	"context"
	"errors"
	"fmt"

	"sport-booking/internal/data/entity"
	"sport-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FieldFilter struct {
	SportType *entity.SportType
	Status    *entity.FieldStatus
}

func (f FieldFilter) where() *whereBuilder {
	w := &whereBuilder{}
	if f.SportType != nil {
		w.add("sport_type = $%d", *f.SportType)
	}
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	return w
}

type FieldRepository interface {
	Create(ctx context.Context, field *entity.Field) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Field, error)
	List(ctx context.Context, filter FieldFilter, limit, offset int) ([]*entity.Field, error)
	Count(ctx context.Context, filter FieldFilter) (int64, error)
	Update(ctx context.Context, field *entity.Field) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type fieldRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFieldRepository(db database.PgxIface, log *zap.Logger) FieldRepository {
	return &fieldRepository{
		db:  db,
		log: log.With(zap.String("repository", "field")),
	}
}

const fieldColumns = `id, name, sport_type, description, capacity, price_per_hour, status, created_at, updated_at`

func scanField(row pgx.Row) (*entity.Field, error) {
	var field entity.Field
	err := row.Scan(
		&field.ID,
		&field.Name,
		&field.SportType,
		&field.Description,
		&field.Capacity,
		&field.PricePerHour,
		&field.Status,
		&field.CreatedAt,
		&field.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *fieldRepository) Create(ctx context.Context, field *entity.Field) error {
	query := `
		INSERT INTO fields (id, name, sport_type, description, capacity, price_per_hour, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		field.ID,
		field.Name,
		field.SportType,
		field.Description,
		field.Capacity,
		field.PricePerHour,
		field.Status,
		field.CreatedAt,
		field.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create field",
			zap.Error(err),
			zap.String("name", field.Name),
		)
		return fmt.Errorf("create field %s: %w", field.Name, err)
	}

	return nil
}

func (r *fieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE id = $1`

	field, err := scanField(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find field by ID",
			zap.Error(err),
			zap.String("field_id", id.String()),
		)
		return nil, fmt.Errorf("find field by ID %s: %w", id.String(), err)
	}

	return field, nil
}

func (r *fieldRepository) List(ctx context.Context, filter FieldFilter, limit, offset int) ([]*entity.Field, error) {
	w := filter.where()
	query := `SELECT ` + fieldColumns + ` FROM fields` + w.sql() +
		` ORDER BY name LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list fields",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []*entity.Field
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			r.log.Error("Failed to scan field row", zap.Error(err))
			return nil, fmt.Errorf("scan field row: %w", err)
		}
		fields = append(fields, field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field rows: %w", err)
	}

	return fields, nil
}

func (r *fieldRepository) Count(ctx context.Context, filter FieldFilter) (int64, error) {
	w := filter.where()

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM fields`+w.sql(), w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count fields", zap.Error(err))
		return 0, fmt.Errorf("count fields: %w", err)
	}

	return count, nil
}

func (r *fieldRepository) Update(ctx context.Context, field *entity.Field) error {
	query := `
		UPDATE fields
		SET name = $2, sport_type = $3, description = $4, capacity = $5,
		    price_per_hour = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		field.ID,
		field.Name,
		field.SportType,
		field.Description,
		field.Capacity,
		field.PricePerHour,
		field.Status,
		field.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update field",
			zap.Error(err),
			zap.String("field_id", field.ID.String()),
		)
		return fmt.Errorf("update field %s: %w", field.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("field %s: %w", field.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete removes the field and, through the foreign key, its bookings.
func (r *fieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete field",
			zap.Error(err),
			zap.String("field_id", id.String()),
		)
		return fmt.Errorf("delete field %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("field %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Field deleted", zap.String("field_id", id.String()))
	return nil
}
