// Package events provides the ledger mutation events emitted by the
// registrar and the in-memory emitter that fans them out.
//
// The primary components are:
// - Event: one registration change (course opened, enrollment added, grade recorded, ...)
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - AuditLogHandler: writes every event to a structured logger
package events
