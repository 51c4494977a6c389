package utils

import (
	"time"
)

// Listing and pagination constants
const (
	// DefaultPageSize is the page size used when the client omits or mangles the limit parameter
	DefaultPageSize = 12

	// MaxPageSize is the hard upper bound on a single listing page
	MaxPageSize = 50

	// MaxSearchLength is the longest accepted search term; longer input is ignored, not truncated
	MaxSearchLength = 100
)

// Casino projection constants
const (
	RatingMin = 0.0
	RatingMax = 5.0

	// DefaultSafetyIndex is assigned when a casino record carries no safety index
	DefaultSafetyIndex = "Medium"

	// FallbackLink is returned for link slots that resolve to nothing
	FallbackLink = "#"
)

// Rate limiting constants
const (
	// GlobalRateLimit is requests per minute per IP across the API
	GlobalRateLimit = 600

	// ListingRateLimit is requests per minute per IP on the public casino listing
	ListingRateLimit = 60

	// AdminWriteRateLimit is requests per minute per IP on admin write endpoints
	AdminWriteRateLimit = 120

	RateLimitWindow = 1 * time.Minute
)

// Permission and audit constants
const (
	// AdminInfoCacheTTL bounds staleness of the cached admin lookup
	AdminInfoCacheTTL = 5 * time.Minute

	// PermissionDenialAlertThreshold is the number of denied permission checks
	// for one principal within the window before a security alert is raised
	PermissionDenialAlertThreshold = 5
	PermissionDenialWindow         = 10 * time.Minute

	// ActivityBufferSize is the capacity of the fire-and-forget audit queue
	ActivityBufferSize = 256
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
