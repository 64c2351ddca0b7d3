// Package session tracks live terminal sessions.
//
// The Manager is the only path to the platform driver: it owns identity
// (ids, idempotent lookup by name) and lazy liveness reconciliation, and
// serializes every driver call behind one lock. Nothing survives process
// restart; shutdown hooks installed at the entry point sweep all sessions
// through CloseAll.
package session
