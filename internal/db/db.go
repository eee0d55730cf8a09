package db

import (
	"context"

	"github.com/mnuddindev/secondbrain/pkg/logger"
	"github.com/mnuddindev/secondbrain/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DBOptions func(*gorm.DB) error

// NewDB opens a Postgres connection and migrates the given models.
func NewDB(ctx context.Context, dsn string, models []interface{}, opts ...DBOptions) (*gorm.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "DB initialization canceled")
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to connect to Database", err.Error())
	}

	for _, opt := range opts {
		if err := opt(gormDB); err != nil {
			return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to apply DB Options", err.Error())
		}
	}

	select {
	case <-ctx.Done():
		return nil, utils.WrapError(ctx.Err(), utils.ErrInternalServerError.Code, "db migration canceled")
	default:
		if err := gormDB.WithContext(ctx).AutoMigrate(models...); err != nil {
			return nil, utils.NewError(utils.ErrInternalServerError.Code, "Failed to Migrate models", err.Error())
		}
	}

	return gormDB, nil
}

// CloseDB closes the underlying connection pool.
func CloseDB(gormDB *gorm.DB, log *logger.Logger) error {
	if gormDB == nil {
		return nil
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to get DB handle for closing")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close database", err.Error())
	}

	if err := sqlDB.Close(); err != nil {
		log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("PostgreSQL database close failed")
		return utils.NewError(utils.ErrInternalServerError.Code, "Failed to close database", err.Error())
	}
	log.Info(context.Background()).Logs("PostgreSQL database connection closed successfully")
	return nil
}
