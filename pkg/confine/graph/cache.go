package graph

// CacheMode is a size/speed knob for movegen memoization. Correctness is
// independent of the mode: None always recomputes, BlackOnly memoizes
// black successor deltas, BothBounded memoizes both black and white
// movegen up to a cache-entry cap.
type CacheMode uint8

const (
	CacheNone CacheMode = iota
	CacheBlackOnly
	CacheBothBounded
)

func (m CacheMode) cachesBlack() bool {
	return m == CacheBlackOnly || m == CacheBothBounded
}

func (m CacheMode) cachesWhite() bool {
	return m == CacheBothBounded
}
