// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// registration logic, so the ledger and the registrar never touch files
// directly.
package store
