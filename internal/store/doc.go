// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Two implementations exist: hand-written SQL
// in internal/platform/postgres and gorm models in internal/platform/gormstore.
package store
