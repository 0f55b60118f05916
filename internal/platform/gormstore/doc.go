// Package gormstore implements the store interfaces with gorm models.
//
// It runs on PostgreSQL (gorm.io/driver/postgres) and SQLite
// (gorm.io/driver/sqlite over mattn/go-sqlite3). The schema is owned by the
// goose migrations in internal/platform/migrations; gorm's AutoMigrate is
// never used, and the models below only describe existing tables.
package gormstore
