package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/domain"
)

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, email, phone string, role domain.Role) *domain.Account {
	tb.Helper()
	a := &domain.Account{
		FirstName: "Test",
		LastName:  "Account",
		Email:     email,
		Phone:     phone,
		Password:  "pw",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedMaterial(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uint) *domain.Material {
	tb.Helper()
	m := &domain.Material{
		OwnerID:      ownerID,
		MaterialKind: "paracetamol base",
		Quantity:     120.5,
		Origin:       "Pune",
		SupplyDate:   domain.NewDate(2024, time.March, 15),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed material: %v", err)
	}
	return m
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID, materialID uint) *domain.Product {
	tb.Helper()
	p := &domain.Product{
		OwnerID:     ownerID,
		MaterialID:  materialID,
		Name:        "Paracetamol 500mg",
		BatchNumber: "B-1001",
		ProducedOn:  domain.NewDate(2024, time.April, 1),
		ExpiresOn:   domain.NewDate(2026, time.April, 1),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedShipment(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID, productID uint) *domain.Shipment {
	tb.Helper()
	s := &domain.Shipment{
		OwnerID:          ownerID,
		ProductID:        productID,
		ShippedOn:        domain.NewDate(2024, time.April, 10),
		TransportMode:    "road",
		Destination:      "Mumbai",
		StorageCondition: "below 25C",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed shipment: %v", err)
	}
	return s
}

func SeedSale(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID, shipmentID uint) *domain.Sale {
	tb.Helper()
	s := &domain.Sale{
		OwnerID:    ownerID,
		ShipmentID: shipmentID,
		ReceivedOn: domain.NewDate(2024, time.April, 20),
		Price:      49.90,
		Location:   "Colaba Pharmacy",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sale: %v", err)
	}
	return s
}
