package app

import (
	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
	"github.com/medtrace/medtrace-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Label      services.LabelService
	Chain      services.ChainService
	Provenance services.ProvenanceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	labelService, err := services.NewLabelService(log, cfg.FrontendBaseURL, cfg.LabelDir, cfg.LabelFont)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Auth:       services.NewAuthService(db, log, repos.Account, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Label:      labelService,
		Chain:      services.NewChainService(db, log, repos.Account, repos.Material, repos.Product, repos.Shipment, repos.Sale, labelService),
		Provenance: services.NewProvenanceService(db, log, repos.Material, repos.Product, repos.Shipment, repos.Sale),
	}, nil
}
