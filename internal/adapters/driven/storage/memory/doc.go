// Package memory provides in-memory implementations of the storage ports.
// They back tests and throwaway sessions (--memory) and share one Store so
// that association writes are atomic with the documents they stamp.
package memory
