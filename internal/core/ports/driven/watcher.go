package driven

// VocabularyWatcher notifies when the vocabulary file changes.
type VocabularyWatcher interface {
	// Watch starts monitoring path. onChange may be invoked from any goroutine
	// and is debounced so an editor save triggers it once.
	Watch(path string, onChange func()) error

	// Stop ends monitoring and releases resources. Safe to call twice.
	Stop() error
}
