package cache

import "time"

// BytesCache stores serialized API responses by key with a TTL. Both
// the in-process and Redis backends satisfy it; callers treat a miss
// and a backend error the same way and recompute.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
