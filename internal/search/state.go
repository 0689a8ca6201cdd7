package search

// Phase is the controller's position in the search lifecycle.
type Phase int

const (
	// PhaseIdle means the debounced query is blank.
	PhaseIdle Phase = iota
	// PhasePending means a query change is waiting for the debounce delay.
	PhasePending
	// PhaseChecking means the debounced query is being looked up in the cache.
	PhaseChecking
	// PhaseLoading means a lookup is outstanding.
	PhaseLoading
	// PhaseSettled means Result or Err holds the outcome for the debounced query.
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseChecking:
		return "checking"
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// State is a snapshot of everything a caller renders from.
type State[R any] struct {
	Query          string
	DebouncedQuery string
	Result         R
	HasResult      bool
	Loading        bool
	Err            error
	CacheSize      int
	Phase          Phase

	// Version increases with every observable change.
	Version uint64
}

// Empty reports whether the search settled without a result or an error,
// which callers present as "no results".
func (s State[R]) Empty() bool {
	return s.Phase == PhaseSettled && !s.HasResult && s.Err == nil
}

// Stats counts controller activity since construction.
type Stats struct {
	Emissions   uint64 // debounced query updates
	CacheHits   uint64
	CacheMisses uint64
	Lookups     uint64 // lookup function invocations
	Failures    uint64 // lookups surfaced as Err
	Cancelled   uint64 // lookups superseded or torn down before completion
	Discarded   uint64 // completions dropped because their token was stale
	Evictions   uint64
}
