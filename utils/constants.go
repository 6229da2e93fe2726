package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// CSRFTokenPrefix is the prefix used for Redis CSRF token keys.
const CSRFTokenPrefix = "csrf:"

// CSRFTokenTTL is the lifetime of an issued CSRF token.
const CSRFTokenTTL = 24 * time.Hour
