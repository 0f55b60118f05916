// Package service provides the application operations behind the user and
// group resources.
//
// Every operation runs in exactly one store transaction obtained from a
// store.TxManager, so a request either applies all of its writes or none.
// Services return store and domain sentinel errors wrapped with context;
// the API layer maps them to HTTP status codes with errors.Is.
package service
