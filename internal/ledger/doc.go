// Package ledger implements the course manager: the authoritative registry of
// course -> roster -> grade. Every registration, grade and removal goes
// through a Ledger, and each student's "selected courses" view is rebuilt
// from it on demand.
//
// A Ledger is an explicitly constructed value with a New / Load / Save
// lifecycle. It is not safe for concurrent mutation; the application has a
// single interactive writer.
package ledger
