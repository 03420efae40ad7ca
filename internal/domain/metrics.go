package domain

import "time"

// CacheOutcome labels a list cache lookup.
type CacheOutcome string

const (
	// CacheHit indicates the list was served from memory.
	CacheHit CacheOutcome = "hit"
	// CacheMiss indicates the list had to be fetched.
	CacheMiss CacheOutcome = "miss"
)

// AssetKind labels which lookup table missed during image resolution.
type AssetKind string

const (
	AssetCategory AssetKind = "category"
	AssetService  AssetKind = "service"
)

// Metrics records pipeline and upstream observations.
type Metrics interface {
	ObserveCacheLookup(tab string, outcome CacheOutcome)
	ObserveFetch(tab string, duration time.Duration, err error)
	ObserveUnmappedAsset(kind AssetKind)
	ObserveFilter(total int, matched int)
}
