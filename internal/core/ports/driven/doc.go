// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TermStore: Vocabulary persistence
//   - DocumentStore: Post persistence
//   - AssociationStore: (post, term) match persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PostSource: Fetches posts from an external platform. Without one, ingest is disabled.
//   - SchedulerStore: Task state for the daemon. Without it, the daemon is disabled.
//   - VocabularyWatcher: File watching for the vocabulary file.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
