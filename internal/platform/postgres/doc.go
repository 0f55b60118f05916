// Package postgres implements the store interfaces with hand-written SQL
// against PostgreSQL through the pgx database/sql driver.
//
// Every store holds a store.DBTX, so the same code runs on a *sql.DB or on
// the *sql.Tx handed out by TxManager. Users and groups are addressed by
// their external keys; surrogate ids never leave this package.
package postgres
