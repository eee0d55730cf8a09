package db

import (
	"time"

	"github.com/mnuddindev/secondbrain/pkg/logger"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// WithLogger routes GORM logs through the application logger.
func WithLogger(log *logger.Logger) DBOptions {
	return func(gormDB *gorm.DB) error {
		gormDB.Config.Logger = gormLogger.New(
			log.Log,
			gormLogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
		return nil
	}
}
