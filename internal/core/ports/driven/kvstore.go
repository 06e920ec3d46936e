// Package driven defines the outbound ports: interfaces the core uses
// to reach storage, the auth backend, the scraper and the assistant.
package driven

// KVStore is the local persistence contract. Each execution context owns
// an independent partition; writes are last-write-wins per key and no
// cross-partition sync is attempted.
//
// Values are strings. Structured values are stored JSON-encoded.
type KVStore interface {
	// Get returns the values for the requested keys. Missing keys are
	// simply absent from the result, never an error.
	Get(keys ...string) (map[string]string, error)

	// Set writes all given key/value pairs.
	Set(values map[string]string) error

	// Remove deletes a key. Removing a missing key is a no-op.
	Remove(key string) error

	// Close releases any underlying resources.
	Close() error
}
