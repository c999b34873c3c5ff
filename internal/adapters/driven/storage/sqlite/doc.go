// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements several store interfaces through a single database:
//
//   - DocumentStore: ingested posts
//   - TermStore: the tracked vocabulary
//   - AssociationStore: document-term matches
//   - SchedulerStore: background task state and history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.foodtrend/data/foodtrend.db
//
// # Thread Safety
//
// All operations are thread-safe. Transactions begin IMMEDIATE so that a
// matching commit holds the write lock from its first statement.
package sqlite
