package config

import (
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache middleware.  Room and
// reservation listings are read far more often than they change, so
// short-TTL caching of GETs takes real load off MySQL; the TTL is kept
// small because room statuses drift as the reconciler sweeps.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // HTTP methods eligible for caching
	TTL          time.Duration
	KeyStrategy  string // route | method_route | route_query | method_route_query
	Prefix       string // Redis key namespace
	MaxBodyBytes int    // bodies larger than this are not cached
}

// LoadCacheConfig builds a CacheConfig from CACHE_* environment
// variables, with defaults suited to the back-office read endpoints.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      splitMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "hbo:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func splitMethods(s string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range strings.Split(s, ",") {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			out[m] = true
		}
	}
	return out
}
