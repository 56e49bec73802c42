package chain

import (
	"context"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type ShipmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, shipments []*domain.Shipment) ([]*domain.Shipment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Shipment, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ListByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*domain.Shipment, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*domain.Shipment, error)
	UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error
}

type shipmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShipmentRepo(db *gorm.DB, baseLog *logger.Logger) ShipmentRepo {
	return &shipmentRepo{db: db, log: baseLog.With("repo", "ShipmentRepo")}
}

func (sr *shipmentRepo) Create(ctx context.Context, tx *gorm.DB, shipments []*domain.Shipment) ([]*domain.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(shipments) == 0 {
		return []*domain.Shipment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

func (sr *shipmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.Shipment
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *shipmentRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Shipment{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByProductIDs preserves creation order of shipments for a product.
func (sr *shipmentRepo) ListByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*domain.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.Shipment
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAvailable returns shipments not yet consumed by any sale, in insertion
// order.
func (sr *shipmentRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*domain.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	consumed := transaction.WithContext(ctx).
		Model(&domain.Sale{}).
		Select("shipment_id")

	var results []*domain.Shipment
	if err := transaction.WithContext(ctx).
		Where("id NOT IN (?)", consumed).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *shipmentRepo) UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Shipment{}).
		Where("id = ?", id).
		Update("label", label).Error
}
