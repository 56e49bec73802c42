package chain

import (
	"context"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, materials []*domain.Material) ([]*domain.Material, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Material, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*domain.Material, error)
	UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (mr *materialRepo) Create(ctx context.Context, tx *gorm.DB, materials []*domain.Material) ([]*domain.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(materials) == 0 {
		return []*domain.Material{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (mr *materialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Material
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

func (mr *materialRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Material{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAvailable returns materials not yet consumed by any product, in
// insertion order. Availability is derived, never stored.
func (mr *materialRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*domain.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	consumed := transaction.WithContext(ctx).
		Model(&domain.Product{}).
		Select("material_id")

	var results []*domain.Material
	if err := transaction.WithContext(ctx).
		Where("id NOT IN (?)", consumed).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *materialRepo) UpdateLabel(ctx context.Context, tx *gorm.DB, id uint, label string) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Material{}).
		Where("id = ?", id).
		Update("label", label).Error
}
