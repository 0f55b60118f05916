// Package mocks provides testify mocks for the store and service interfaces.
package mocks
