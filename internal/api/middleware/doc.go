// Package middleware provides HTTP middleware for request tracing and
// Prometheus request metrics.
package middleware
