// Package repositories implements SQLite persistence for the watchlist entities.
//
// Key Implementations:
//   - [UserRepository] : Admin account persistence with first-user lookup
//   - [MovieRepository] : Watchlist entry CRUD
//   - [SessionRepository] : Login session tokens with expiry pruning
//
// Repositories accept a [DBTX] so the same code runs against a [*sql.DB] or inside a [*sql.Tx]
// (the fixture seeder writes every table in one transaction).
//
// Missing rows are reported by wrapping [shared.ErrNotFound]; callers match it with errors.Is.
// Repositories do not validate input. Length limits belong to the service layer.
package repositories
