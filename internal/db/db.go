package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"giftregistry/internal/model"
)

// Supported values of the DB_DRIVER setting.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Dialector picks the gorm dialector for the configured driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL, "":
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open returns a connected GORM DB instance. Unique-constraint violations are
// translated to gorm.ErrDuplicatedKey for both dialects.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or updates the schema. With reset set, every table is
// dropped first, children before parents.
func Migrate(db *gorm.DB, reset bool) error {
	entities := model.All()

	if reset {
		if err := db.Migrator().DropTable("wishlist_items"); err != nil {
			return fmt.Errorf("drop wishlist_items: %w", err)
		}
		for i := len(entities) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(entities[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}

	if err := db.AutoMigrate(entities...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
