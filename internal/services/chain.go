package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/data/repos/account"
	"github.com/medtrace/medtrace-backend/internal/data/repos/chain"
	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type CreateMaterialInput struct {
	MaterialKind string      `json:"material_kind"`
	Quantity     float64     `json:"quantity"`
	Origin       string      `json:"origin"`
	SupplyDate   domain.Date `json:"supply_date"`
}

type CreateProductInput struct {
	MaterialID  uint        `json:"material_id"`
	Name        string      `json:"name"`
	BatchNumber string      `json:"batch_number"`
	ProducedOn  domain.Date `json:"produced_on"`
	ExpiresOn   domain.Date `json:"expires_on"`
}

type CreateShipmentInput struct {
	ProductID        uint        `json:"product_id"`
	ShippedOn        domain.Date `json:"shipped_on"`
	TransportMode    string      `json:"transport_mode"`
	Destination      string      `json:"destination"`
	StorageCondition string      `json:"storage_condition"`
}

type CreateSaleInput struct {
	ShipmentID uint        `json:"shipment_id"`
	ReceivedOn domain.Date `json:"received_on"`
	Price      float64     `json:"price"`
	Location   string      `json:"location"`
}

// ChainService is the write side of the custody ledger. Every create runs as
// one transaction: upstream check, insert, label render, label backfill. A
// failure anywhere rolls the whole unit back.
type ChainService interface {
	CreateMaterial(ctx context.Context, ownerID uint, in CreateMaterialInput) (*domain.Material, error)
	CreateProduct(ctx context.Context, ownerID uint, in CreateProductInput) (*domain.Product, error)
	CreateShipment(ctx context.Context, ownerID uint, in CreateShipmentInput) (*domain.Shipment, error)
	CreateSale(ctx context.Context, ownerID uint, in CreateSaleInput) (*domain.Sale, error)

	ListAvailableMaterials(ctx context.Context) ([]*domain.Material, error)
	ListAvailableProducts(ctx context.Context) ([]*domain.Product, error)
	ListAvailableShipments(ctx context.Context) ([]*domain.Shipment, error)
	ListSales(ctx context.Context) ([]*domain.Sale, error)
}

type chainService struct {
	db           *gorm.DB
	log          *logger.Logger
	accountRepo  account.AccountRepo
	materialRepo chain.MaterialRepo
	productRepo  chain.ProductRepo
	shipmentRepo chain.ShipmentRepo
	saleRepo     chain.SaleRepo
	labelService LabelService
}

func NewChainService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo account.AccountRepo,
	materialRepo chain.MaterialRepo,
	productRepo chain.ProductRepo,
	shipmentRepo chain.ShipmentRepo,
	saleRepo chain.SaleRepo,
	labelService LabelService,
) ChainService {
	return &chainService{
		db:           db,
		log:          log.With("service", "ChainService"),
		accountRepo:  accountRepo,
		materialRepo: materialRepo,
		productRepo:  productRepo,
		shipmentRepo: shipmentRepo,
		saleRepo:     saleRepo,
		labelService: labelService,
	}
}

func (cs *chainService) CreateMaterial(ctx context.Context, ownerID uint, in CreateMaterialInput) (*domain.Material, error) {
	switch {
	case strings.TrimSpace(in.MaterialKind) == "":
		return nil, validationErr("material_kind is required")
	case in.Quantity <= 0:
		return nil, validationErr("quantity must be positive")
	case strings.TrimSpace(in.Origin) == "":
		return nil, validationErr("origin is required")
	case in.SupplyDate.IsZero():
		return nil, validationErr("supply_date is required")
	}
	if err := cs.requireRole(ctx, ownerID, domain.StageMaterial.WriterRole()); err != nil {
		return nil, err
	}

	m := &domain.Material{
		OwnerID:      ownerID,
		MaterialKind: strings.TrimSpace(in.MaterialKind),
		Quantity:     in.Quantity,
		Origin:       strings.TrimSpace(in.Origin),
		SupplyDate:   in.SupplyDate,
	}
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.materialRepo.Create(ctx, tx, []*domain.Material{m}); err != nil {
			return storeErr("create material", err)
		}
		// A material's scan resolves to its own id until a product exists.
		label, err := cs.labelService.Generate(ctx, domain.StageMaterial, m.ID, m.ID)
		if err != nil {
			return err
		}
		if err := cs.materialRepo.UpdateLabel(ctx, tx, m.ID, label); err != nil {
			return storeErr("store material label", err)
		}
		m.Label = label
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Material registered", "material_id", m.ID, "owner_id", ownerID)
	return m, nil
}

func (cs *chainService) CreateProduct(ctx context.Context, ownerID uint, in CreateProductInput) (*domain.Product, error) {
	switch {
	case in.MaterialID == 0:
		return nil, validationErr("material_id is required")
	case strings.TrimSpace(in.Name) == "":
		return nil, validationErr("name is required")
	case strings.TrimSpace(in.BatchNumber) == "":
		return nil, validationErr("batch_number is required")
	case in.ProducedOn.IsZero():
		return nil, validationErr("produced_on is required")
	case in.ExpiresOn.IsZero():
		return nil, validationErr("expires_on is required")
	}
	if err := cs.requireRole(ctx, ownerID, domain.StageProduct.WriterRole()); err != nil {
		return nil, err
	}

	p := &domain.Product{
		OwnerID:     ownerID,
		MaterialID:  in.MaterialID,
		Name:        strings.TrimSpace(in.Name),
		BatchNumber: strings.TrimSpace(in.BatchNumber),
		ProducedOn:  in.ProducedOn,
		ExpiresOn:   in.ExpiresOn,
	}
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := cs.materialRepo.Exists(ctx, tx, in.MaterialID)
		if err != nil {
			return storeErr("check material", err)
		}
		if !exists {
			return fmt.Errorf("%w: material %d", domain.ErrReferenceNotFound, in.MaterialID)
		}
		if _, err := cs.productRepo.Create(ctx, tx, []*domain.Product{p}); err != nil {
			return storeErr("create product", err)
		}
		label, err := cs.labelService.Generate(ctx, domain.StageProduct, p.ID, p.ID)
		if err != nil {
			return err
		}
		if err := cs.productRepo.UpdateLabel(ctx, tx, p.ID, label); err != nil {
			return storeErr("store product label", err)
		}
		p.Label = label
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Product registered", "product_id", p.ID, "material_id", p.MaterialID, "owner_id", ownerID)
	return p, nil
}

func (cs *chainService) CreateShipment(ctx context.Context, ownerID uint, in CreateShipmentInput) (*domain.Shipment, error) {
	switch {
	case in.ProductID == 0:
		return nil, validationErr("product_id is required")
	case in.ShippedOn.IsZero():
		return nil, validationErr("shipped_on is required")
	case strings.TrimSpace(in.TransportMode) == "":
		return nil, validationErr("transport_mode is required")
	case strings.TrimSpace(in.Destination) == "":
		return nil, validationErr("destination is required")
	case strings.TrimSpace(in.StorageCondition) == "":
		return nil, validationErr("storage_condition is required")
	}
	if err := cs.requireRole(ctx, ownerID, domain.StageShipment.WriterRole()); err != nil {
		return nil, err
	}

	s := &domain.Shipment{
		OwnerID:          ownerID,
		ProductID:        in.ProductID,
		ShippedOn:        in.ShippedOn,
		TransportMode:    strings.TrimSpace(in.TransportMode),
		Destination:      strings.TrimSpace(in.Destination),
		StorageCondition: strings.TrimSpace(in.StorageCondition),
	}
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := cs.productRepo.Exists(ctx, tx, in.ProductID)
		if err != nil {
			return storeErr("check product", err)
		}
		if !exists {
			return fmt.Errorf("%w: product %d", domain.ErrReferenceNotFound, in.ProductID)
		}
		if _, err := cs.shipmentRepo.Create(ctx, tx, []*domain.Shipment{s}); err != nil {
			return storeErr("create shipment", err)
		}
		// Downstream labels resolve the chain's product, not the row itself.
		label, err := cs.labelService.Generate(ctx, domain.StageShipment, s.ID, s.ProductID)
		if err != nil {
			return err
		}
		if err := cs.shipmentRepo.UpdateLabel(ctx, tx, s.ID, label); err != nil {
			return storeErr("store shipment label", err)
		}
		s.Label = label
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Shipment registered", "shipment_id", s.ID, "product_id", s.ProductID, "owner_id", ownerID)
	return s, nil
}

func (cs *chainService) CreateSale(ctx context.Context, ownerID uint, in CreateSaleInput) (*domain.Sale, error) {
	switch {
	case in.ShipmentID == 0:
		return nil, validationErr("shipment_id is required")
	case in.ReceivedOn.IsZero():
		return nil, validationErr("received_on is required")
	case in.Price <= 0:
		return nil, validationErr("price must be positive")
	case strings.TrimSpace(in.Location) == "":
		return nil, validationErr("location is required")
	}
	if err := cs.requireRole(ctx, ownerID, domain.StageSale.WriterRole()); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		OwnerID:    ownerID,
		ShipmentID: in.ShipmentID,
		ReceivedOn: in.ReceivedOn,
		Price:      in.Price,
		Location:   strings.TrimSpace(in.Location),
	}
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shipments, err := cs.shipmentRepo.GetByIDs(ctx, tx, []uint{in.ShipmentID})
		if err != nil {
			return storeErr("check shipment", err)
		}
		if len(shipments) == 0 {
			return fmt.Errorf("%w: shipment %d", domain.ErrReferenceNotFound, in.ShipmentID)
		}
		if _, err := cs.saleRepo.Create(ctx, tx, []*domain.Sale{sale}); err != nil {
			return storeErr("create sale", err)
		}
		label, err := cs.labelService.Generate(ctx, domain.StageSale, sale.ID, shipments[0].ProductID)
		if err != nil {
			return err
		}
		if err := cs.saleRepo.UpdateLabel(ctx, tx, sale.ID, label); err != nil {
			return storeErr("store sale label", err)
		}
		sale.Label = label
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Sale registered", "sale_id", sale.ID, "shipment_id", sale.ShipmentID, "owner_id", ownerID)
	return sale, nil
}

func (cs *chainService) ListAvailableMaterials(ctx context.Context) ([]*domain.Material, error) {
	materials, err := cs.materialRepo.ListAvailable(ctx, nil)
	if err != nil {
		return nil, storeErr("list materials", err)
	}
	return materials, nil
}

func (cs *chainService) ListAvailableProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := cs.productRepo.ListAvailable(ctx, nil)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	return products, nil
}

func (cs *chainService) ListAvailableShipments(ctx context.Context) ([]*domain.Shipment, error) {
	shipments, err := cs.shipmentRepo.ListAvailable(ctx, nil)
	if err != nil {
		return nil, storeErr("list shipments", err)
	}
	return shipments, nil
}

func (cs *chainService) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	sales, err := cs.saleRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, storeErr("list sales", err)
	}
	return sales, nil
}

// requireRole enforces role-on-account authorization for every write: the
// stored role must match the stage being written.
func (cs *chainService) requireRole(ctx context.Context, ownerID uint, role domain.Role) error {
	accounts, err := cs.accountRepo.GetByIDs(ctx, nil, []uint{ownerID})
	if err != nil {
		return storeErr("lookup owner", err)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrReferenceNotFound, ownerID)
	}
	if accounts[0].Role != role {
		return fmt.Errorf("%w: %s required", domain.ErrUnauthorizedRole, role)
	}
	return nil
}
