package config

import "time"

// Network and cache timings
const (
	// HTTPTimeout bounds the whole Overpass round trip, a bit above the server-side query timeout
	HTTPTimeout = 200 * time.Second

	// RedisOpTimeout bounds a single cache read or write
	RedisOpTimeout = 5 * time.Second

	// RawPayloadTTL defines how long a cached Overpass payload stays valid
	RawPayloadTTL = 24 * time.Hour
)
