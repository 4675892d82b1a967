package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/erp-records-backend/internal/repo"
	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
)

type repository struct {
	repo.Base
}

// NewRepository builds a record store bound to the provided DB.
func NewRepository(db *gorm.DB) Store {
	return &repository{Base: repo.NewBase(db)}
}

// List returns every record, newest first.
func (r *repository) List(ctx context.Context) ([]models.ERPRecord, error) {
	var rows []models.ERPRecord
	if err := r.DB(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Create(ctx context.Context, record *models.ERPRecord) (*models.ERPRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Update applies a partial update and reports gorm.ErrRecordNotFound for unknown ids.
func (r *repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return r.ExistsByID(ctx, &models.ERPRecord{}, id)
	}

	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	return repo.RequireRow(r.DB(ctx).Model(&models.ERPRecord{}).Where("id = ?", id).Updates(updates))
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.RequireRow(r.DB(ctx).Where("id = ?", id).Delete(&models.ERPRecord{}))
}
