package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/data/repos/chain"
	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

// ProvenanceService assembles the full chain context for any entity id. The
// walk runs inside one read transaction so a concurrent write can never show
// up as a torn chain.
type ProvenanceService interface {
	Resolve(ctx context.Context, id uint) (*domain.History, error)
}

type provenanceService struct {
	db           *gorm.DB
	log          *logger.Logger
	materialRepo chain.MaterialRepo
	productRepo  chain.ProductRepo
	shipmentRepo chain.ShipmentRepo
	saleRepo     chain.SaleRepo
}

func NewProvenanceService(
	db *gorm.DB,
	log *logger.Logger,
	materialRepo chain.MaterialRepo,
	productRepo chain.ProductRepo,
	shipmentRepo chain.ShipmentRepo,
	saleRepo chain.SaleRepo,
) ProvenanceService {
	return &provenanceService{
		db:           db,
		log:          log.With("service", "ProvenanceService"),
		materialRepo: materialRepo,
		productRepo:  productRepo,
		shipmentRepo: shipmentRepo,
		saleRepo:     saleRepo,
	}
}

func (ps *provenanceService) Resolve(ctx context.Context, id uint) (*domain.History, error) {
	var history *domain.History
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := ps.productRepo.GetByIDs(ctx, tx, []uint{id})
		if err != nil {
			return storeErr("lookup product", err)
		}
		if len(products) > 0 {
			history, err = ps.assembleFromProduct(ctx, tx, products[0])
			return err
		}

		materials, err := ps.materialRepo.GetByIDs(ctx, tx, []uint{id})
		if err != nil {
			return storeErr("lookup material", err)
		}
		if len(materials) > 0 {
			history = &domain.History{
				Material:  materials[0],
				Shipments: []domain.Shipment{},
				Sales:     []domain.Sale{},
			}
			return nil
		}

		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (ps *provenanceService) assembleFromProduct(ctx context.Context, tx *gorm.DB, product *domain.Product) (*domain.History, error) {
	history := &domain.History{
		Medicine:  product,
		Shipments: []domain.Shipment{},
		Sales:     []domain.Sale{},
	}

	// A dangling material reference means "no material", not an error.
	materials, err := ps.materialRepo.GetByIDs(ctx, tx, []uint{product.MaterialID})
	if err != nil {
		return nil, storeErr("lookup material", err)
	}
	if len(materials) > 0 {
		history.Material = materials[0]
	}

	shipments, err := ps.shipmentRepo.ListByProductIDs(ctx, tx, []uint{product.ID})
	if err != nil {
		return nil, storeErr("list shipments", err)
	}
	shipmentIDs := make([]uint, 0, len(shipments))
	for _, s := range shipments {
		history.Shipments = append(history.Shipments, *s)
		shipmentIDs = append(shipmentIDs, s.ID)
	}

	sales, err := ps.saleRepo.ListByShipmentIDs(ctx, tx, shipmentIDs)
	if err != nil {
		return nil, storeErr("list sales", err)
	}
	for _, s := range sales {
		history.Sales = append(history.Sales, *s)
	}

	return history, nil
}
