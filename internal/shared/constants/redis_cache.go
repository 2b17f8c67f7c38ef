package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: voyago:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_SHORT       = 6 * time.Hour
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
	TTL_DYNAMIC_SHORT      = 5 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "voyago"
	LOCK_PREFIX  = CACHE_PREFIX + ":lock:"
)

// ================== LISTINGS MODULE ==================

const (
	CACHE_KEY_LISTING_DETAIL = CACHE_PREFIX + ":listings:detail:uuid:" // + listing-id
	CACHE_KEY_LISTINGS_LIST  = CACHE_PREFIX + ":listings:list"         // + :kind:X:page:Y:limit:Z
)

const (
	TTL_LISTING_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_LISTINGS_LIST  = TTL_SEMI_STATIC_QUICK  // 15 minutes
)

// ================== PRODUCTS MODULE ==================

const (
	CACHE_KEY_PRODUCTS_LIST = CACHE_PREFIX + ":products:list" // + :page:X:limit:Y
)

const (
	TTL_PRODUCTS_LIST = TTL_STATIC_SHORT // 6 hours
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_OVERVIEW = CACHE_PREFIX + ":analytics:overview"
	TTL_ANALYTICS_OVERVIEW       = TTL_DYNAMIC_SHORT // 5 minutes
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_LISTINGS_LIST = CACHE_KEY_LISTINGS_LIST + ":*"
	PATTERN_INVALIDATE_PRODUCTS_LIST = CACHE_KEY_PRODUCTS_LIST + ":*"
)

// ================== HELPER FUNCTIONS ==================

func BuildListingDetailKey(listingID string) string {
	return CACHE_KEY_LISTING_DETAIL + listingID
}

// BuildListingListKey example: voyago:listings:list:kind:ACTIVITY:page:1:limit:20
func BuildListingListKey(kind string, page, limit int) string {
	if kind == "" {
		kind = "all"
	}
	return fmt.Sprintf("%s:kind:%s:page:%d:limit:%d", CACHE_KEY_LISTINGS_LIST, kind, page, limit)
}

func BuildProductListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_PRODUCTS_LIST, page, limit)
}

// BuildBookingLockKey serialises Book and Cancel for one tourist on one listing
func BuildBookingLockKey(listingID, touristID string) string {
	return "booking:" + listingID + ":" + touristID
}
