package chain

import (
	"context"
	"testing"

	"github.com/medtrace/medtrace-backend/internal/data/repos/testutil"
	"github.com/medtrace/medtrace-backend/internal/domain"
)

func TestMaterialListAvailable(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewMaterialRepo(db, testutil.Logger(t))

	producer := testutil.SeedAccount(t, ctx, db, "p@acme.test", "+100", domain.RoleProducer)
	m1 := testutil.SeedMaterial(t, ctx, db, producer.ID)
	m2 := testutil.SeedMaterial(t, ctx, db, producer.ID)
	m3 := testutil.SeedMaterial(t, ctx, db, producer.ID)

	// Consuming m2 must drop it from the available list.
	testutil.SeedProduct(t, ctx, db, producer.ID, m2.ID)

	available, err := repo.ListAvailable(ctx, nil)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 available materials, got %d", len(available))
	}
	if available[0].ID != m1.ID || available[1].ID != m3.ID {
		t.Fatalf("expected [%d %d] in insertion order, got [%d %d]",
			m1.ID, m3.ID, available[0].ID, available[1].ID)
	}
}

func TestProductListAvailable(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewProductRepo(db, testutil.Logger(t))

	producer := testutil.SeedAccount(t, ctx, db, "p@acme.test", "+100", domain.RoleProducer)
	distributor := testutil.SeedAccount(t, ctx, db, "d@acme.test", "+200", domain.RoleDistributor)

	m := testutil.SeedMaterial(t, ctx, db, producer.ID)
	p1 := testutil.SeedProduct(t, ctx, db, producer.ID, m.ID)
	p2 := testutil.SeedProduct(t, ctx, db, producer.ID, m.ID)

	testutil.SeedShipment(t, ctx, db, distributor.ID, p1.ID)

	available, err := repo.ListAvailable(ctx, nil)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(available) != 1 || available[0].ID != p2.ID {
		t.Fatalf("expected only product %d available, got %+v", p2.ID, available)
	}
}

func TestShipmentListAvailableAndByProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewShipmentRepo(db, testutil.Logger(t))

	producer := testutil.SeedAccount(t, ctx, db, "p@acme.test", "+100", domain.RoleProducer)
	distributor := testutil.SeedAccount(t, ctx, db, "d@acme.test", "+200", domain.RoleDistributor)
	retailer := testutil.SeedAccount(t, ctx, db, "r@acme.test", "+300", domain.RoleRetailer)

	m := testutil.SeedMaterial(t, ctx, db, producer.ID)
	p := testutil.SeedProduct(t, ctx, db, producer.ID, m.ID)
	s1 := testutil.SeedShipment(t, ctx, db, distributor.ID, p.ID)
	s2 := testutil.SeedShipment(t, ctx, db, distributor.ID, p.ID)

	testutil.SeedSale(t, ctx, db, retailer.ID, s1.ID)

	available, err := repo.ListAvailable(ctx, nil)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(available) != 1 || available[0].ID != s2.ID {
		t.Fatalf("expected only shipment %d available, got %+v", s2.ID, available)
	}

	byProduct, err := repo.ListByProductIDs(ctx, nil, []uint{p.ID})
	if err != nil {
		t.Fatalf("ListByProductIDs: %v", err)
	}
	if len(byProduct) != 2 || byProduct[0].ID != s1.ID || byProduct[1].ID != s2.ID {
		t.Fatalf("expected shipments [%d %d], got %+v", s1.ID, s2.ID, byProduct)
	}
}

func TestSaleListByShipmentIDs(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewSaleRepo(db, testutil.Logger(t))

	producer := testutil.SeedAccount(t, ctx, db, "p@acme.test", "+100", domain.RoleProducer)
	distributor := testutil.SeedAccount(t, ctx, db, "d@acme.test", "+200", domain.RoleDistributor)
	retailer := testutil.SeedAccount(t, ctx, db, "r@acme.test", "+300", domain.RoleRetailer)

	m := testutil.SeedMaterial(t, ctx, db, producer.ID)
	p := testutil.SeedProduct(t, ctx, db, producer.ID, m.ID)
	s := testutil.SeedShipment(t, ctx, db, distributor.ID, p.ID)
	other := testutil.SeedShipment(t, ctx, db, distributor.ID, p.ID)

	sale1 := testutil.SeedSale(t, ctx, db, retailer.ID, s.ID)
	testutil.SeedSale(t, ctx, db, retailer.ID, other.ID)

	sales, err := repo.ListByShipmentIDs(ctx, nil, []uint{s.ID})
	if err != nil {
		t.Fatalf("ListByShipmentIDs: %v", err)
	}
	if len(sales) != 1 || sales[0].ID != sale1.ID {
		t.Fatalf("expected only sale %d, got %+v", sale1.ID, sales)
	}

	all, err := repo.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(all))
	}
}

func TestUpdateLabel(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewMaterialRepo(db, testutil.Logger(t))

	producer := testutil.SeedAccount(t, ctx, db, "p@acme.test", "+100", domain.RoleProducer)
	m := testutil.SeedMaterial(t, ctx, db, producer.ID)

	if err := repo.UpdateLabel(ctx, nil, m.ID, "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("UpdateLabel: %v", err)
	}

	found, err := repo.GetByIDs(ctx, nil, []uint{m.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(found) != 1 || found[0].Label != "data:image/png;base64,AAAA" {
		t.Fatalf("label not persisted: %+v", found)
	}
}

func TestMaterialDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewMaterialRepo(db, testutil.Logger(t))

	producer := testutil.SeedAccount(t, ctx, db, "p@acme.test", "+100", domain.RoleProducer)
	m := testutil.SeedMaterial(t, ctx, db, producer.ID)

	found, err := repo.GetByIDs(ctx, nil, []uint{m.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 material, got %d", len(found))
	}
	if got := found[0].SupplyDate.String(); got != "2024-03-15" {
		t.Fatalf("supply date round trip: got %s", got)
	}
}
