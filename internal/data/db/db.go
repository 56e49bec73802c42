package db

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
	"github.com/medtrace/medtrace-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService opens the relational store. Postgres is used when DB_DRIVER says
// so (or POSTGRES_HOST is set); otherwise a local SQLite file.
func NewService(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{Logger: gormLog}

	var (
		db  *gorm.DB
		err error
	)
	switch driverName(logg) {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			utils.GetEnv("POSTGRES_USER", "postgres", logg),
			utils.GetEnv("POSTGRES_PASSWORD", "", logg),
			utils.GetEnv("POSTGRES_HOST", "localhost", logg),
			utils.GetEnv("POSTGRES_PORT", "5432", logg),
			utils.GetEnv("POSTGRES_NAME", "medtrace", logg),
		)
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		path := utils.GetEnv("SQLITE_PATH", "medtrace.db", logg)
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Material{},
		&domain.Product{},
		&domain.Shipment{},
		&domain.Sale{},
	)
}

func driverName(log *logger.Logger) string {
	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "", log))
	if driver != "" {
		return driver
	}
	if os.Getenv("POSTGRES_HOST") != "" {
		return "postgres"
	}
	return "sqlite"
}
