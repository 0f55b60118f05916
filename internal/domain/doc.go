// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, groups and the validation rules
// for their identifiers. It is independent of any specific infrastructure
// or delivery mechanism.
package domain
