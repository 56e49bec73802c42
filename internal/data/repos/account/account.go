package account

import (
	"context"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, accounts []*domain.Account) ([]*domain.Account, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Account, error)
	GetByIdentifier(ctx context.Context, tx *gorm.DB, identifier string) (*domain.Account, error)
	IdentityExists(ctx context.Context, tx *gorm.DB, email, phone string) (bool, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: baseLog.With("repo", "AccountRepo")}
}

func (ar *accountRepo) Create(ctx context.Context, tx *gorm.DB, accounts []*domain.Account) ([]*domain.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(accounts) == 0 {
		return []*domain.Account{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (ar *accountRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Account
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

// GetByIdentifier looks an account up by email or phone. A miss returns
// (nil, nil).
func (ar *accountRepo) GetByIdentifier(ctx context.Context, tx *gorm.DB, identifier string) (*domain.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Account
	if err := transaction.WithContext(ctx).
		Where("email = ? OR phone = ?", identifier, identifier).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ar *accountRepo) IdentityExists(ctx context.Context, tx *gorm.DB, email, phone string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Account{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
