// Package cacheerr holds the error values shared by every cache engine.
package cacheerr

import "errors"

var (
	// ErrConfig is returned by constructors given an invalid capacity or an
	// unknown eviction algorithm.
	ErrConfig = errors.New("invalid cache configuration")

	// ErrKeyType is returned when a key cannot be hashed or ordered the way
	// the selected engine requires.
	ErrKeyType = errors.New("unsupported key type")

	// ErrNotFound is returned by calls that promise to hand back a removed
	// entry when the key is absent.
	ErrNotFound = errors.New("key not found")

	// ErrEmpty is returned by pop and evict calls on an empty structure.
	ErrEmpty = errors.New("empty structure")

	// ErrZeroActivity is returned by HitRate before any lookup happened.
	ErrZeroActivity = errors.New("no lookups recorded")
)
