package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/config"
)

// Connect opens a GORM connection for the configured driver.
// SQLite is the default and what the tests use; MySQL is available for
// deployments that outgrow a single file.
func Connect(cfg config.Database) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
