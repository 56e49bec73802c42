package app

import (
	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/data/repos/account"
	"github.com/medtrace/medtrace-backend/internal/data/repos/chain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type Repos struct {
	Account  account.AccountRepo
	Material chain.MaterialRepo
	Product  chain.ProductRepo
	Shipment chain.ShipmentRepo
	Sale     chain.SaleRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:  account.NewAccountRepo(db, log),
		Material: chain.NewMaterialRepo(db, log),
		Product:  chain.NewProductRepo(db, log),
		Shipment: chain.NewShipmentRepo(db, log),
		Sale:     chain.NewSaleRepo(db, log),
	}
}
