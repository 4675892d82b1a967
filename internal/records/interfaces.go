package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
)

// Store defines the persistence operations the record list is built on.
type Store interface {
	List(ctx context.Context) ([]models.ERPRecord, error)
	Create(ctx context.Context, record *models.ERPRecord) (*models.ERPRecord, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
