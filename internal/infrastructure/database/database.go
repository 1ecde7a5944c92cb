package database

import (
	"shoredock-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB. When a Postgres DSN is set it wins; otherwise the
// embedded sqlite file is used (the local-first default).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when running behind a pooler.
func Open(postgresDSN, sqlitePath string) (*gorm.DB, error) {
	if postgresDSN != "" {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  postgresDSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
}

// AutoMigrate runs migrations for the core models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.ProjectVersion{},
		&models.Attachment{},
	)
}
