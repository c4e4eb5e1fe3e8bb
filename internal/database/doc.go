// Package database provides SQLite-based storage for audit history.
//
// This package implements the AuditDB, which stores:
//   - Audit run records with aggregate strength counts per source file
//   - Per-password evaluation rows keyed by digest
//
// Plaintext passwords never reach the database. Each evaluation row
// carries only the SHA3-256 digest of the password together with its
// score, length and warning types, which is enough to track a password
// across runs without being able to read it back.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
