// Package service provides the Registrar, the application service that owns
// a session's course catalog, student registry and registration ledger.
//
// The Registrar loads state from the stores at startup, applies operator
// commands through the ledger, publishes an event for every change and writes
// everything back on Flush.
package service
