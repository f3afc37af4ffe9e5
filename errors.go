package evictcache

import "github.com/venkatsvpr/evictcache/internal/cacheerr"

// Errors returned by this package and by the simplelru and splay engines.
// Test for them with errors.Is.
var (
	ErrConfig       = cacheerr.ErrConfig
	ErrKeyType      = cacheerr.ErrKeyType
	ErrNotFound     = cacheerr.ErrNotFound
	ErrEmpty        = cacheerr.ErrEmpty
	ErrZeroActivity = cacheerr.ErrZeroActivity
)
