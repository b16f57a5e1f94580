// Package store defines the persistence interfaces consumed by the
// authorization core. Implementations live in the gorm subpackage;
// tests substitute testify mocks.
package store
