// Package domain contains the core registration entities of the application:
// courses, students, the per-registration record kept by the ledger and the
// derived "selected courses" view rebuilt from it. It is independent of any
// storage or delivery mechanism.
package domain
