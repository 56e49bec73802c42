package chain

import (
	"context"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type SaleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sales []*domain.Sale) ([]*domain.Sale, error)
	ListByShipmentIDs(ctx context.Context, tx *gorm.DB, shipmentIDs []uint) ([]*domain.Sale, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Sale, error)
	UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error
}

type saleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSaleRepo(db *gorm.DB, baseLog *logger.Logger) SaleRepo {
	return &saleRepo{db: db, log: baseLog.With("repo", "SaleRepo")}
}

func (sr *saleRepo) Create(ctx context.Context, tx *gorm.DB, sales []*domain.Sale) ([]*domain.Sale, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(sales) == 0 {
		return []*domain.Sale{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// ListByShipmentIDs preserves creation order among sales whose shipment is in
// the set; no re-sort by business date.
func (sr *saleRepo) ListByShipmentIDs(ctx context.Context, tx *gorm.DB, shipmentIDs []uint) ([]*domain.Sale, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.Sale
	if len(shipmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("shipment_id IN ?", shipmentIDs).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAll returns every sale in insertion order. The retail stage is terminal,
// so there is no availability subset to compute.
func (sr *saleRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Sale, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.Sale
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *saleRepo) UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("id = ?", id).
		Update("label", label).Error
}
