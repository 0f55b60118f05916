// Package testdb provides database helpers for tests.
//
// PostgreSQL tests are integration tests: they run only when DATABASE_URL
// (or PLANET_TEST_DB_URL) points at a reachable server and are skipped
// otherwise. SQLite databases are created per test in a temp directory, so
// tests built on them always run.
package testdb
