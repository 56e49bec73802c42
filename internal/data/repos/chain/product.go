package chain

import (
	"context"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*domain.Product) ([]*domain.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Product, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*domain.Product, error)
	UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*domain.Product) ([]*domain.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(products) == 0 {
		return []*domain.Product{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*domain.Product
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

func (pr *productRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAvailable returns products not yet consumed by any shipment, in
// insertion order.
func (pr *productRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*domain.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	consumed := transaction.WithContext(ctx).
		Model(&domain.Shipment{}).
		Select("product_id")

	var results []*domain.Product
	if err := transaction.WithContext(ctx).
		Where("id NOT IN (?)", consumed).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("label", label).Error
}
