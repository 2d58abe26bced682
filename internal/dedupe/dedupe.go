package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent reads that would otherwise hammer the stats database (or the
// redis cache on a miss). Using a centralized singleflight.Group ensures
// that only one query runs for a given key while other callers wait for
// the result.

import "golang.org/x/sync/singleflight"

// StatsGroup deduplicates season-average lookups keyed by the canonical
// card key ("<player>_<season>").
var StatsGroup singleflight.Group

// PoolGroup deduplicates card-pool listings. The pool changes rarely, so
// a single key ("pool") covers every caller.
var PoolGroup singleflight.Group
