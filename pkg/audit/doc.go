// Package audit provides RFC5424-format audit logging for the
// authorization core: permission checks, boundary decisions, token
// revocations, and policy issuance.
//
// Events go to stdout in syslog format and, when AUDIT_DATABASE_URL is
// set, to the audit database as well. Audit logging defaults to enabled
// and can be disabled with FIELDGATE_AUDIT_ENABLED=false.
package audit
