// Package model contains the database models for the Fieldgate
// authorization core: roles and their inheritance edges, permissions,
// user role assignments, sessions, the token revocation ledger, and
// device policy issuance records.
package model
