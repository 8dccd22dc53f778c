package roster

// Option applies a configuration option to the in-memory roster.
type Option func(*inMemoryRoster)

// WithMaxSize caps the number of participants held.
// If maxSize <= 0 the roster is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRoster) {
		r.maxSize = maxSize
	}
}
