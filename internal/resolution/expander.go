package resolution

// Coverage maps element code to the maximum quantity a tier can grant
// (Unlimited for no cap). Coverage answers "can this tier provide at least
// this much", so merging across inclusion paths is optimistic: the wider cap
// always wins.
type Coverage map[string]int

// Satisfies reports whether the coverage grants at least qty of the element.
func (c Coverage) Satisfies(elementCode string, qty int) bool {
	cap, ok := c[elementCode]
	if !ok {
		return false
	}
	return cap == Unlimited || cap >= qty
}

// expansion is coverage plus the declared element order it was accumulated
// in. The order decides which elements count when a tier reference caps how
// many of the referenced tier's elements it grants.
type expansion struct {
	order []string
	caps  map[string]int
}

func newExpansion() *expansion {
	return &expansion{caps: map[string]int{}}
}

func (e *expansion) add(code string, cap int) {
	if existing, ok := e.caps[code]; ok {
		e.caps[code] = widerCap(existing, cap)
		return
	}
	e.caps[code] = cap
	e.order = append(e.order, code)
}

// merge folds src into e. maxElements caps how many of src's elements (in
// src's declared order) participate; Unlimited merges everything.
func (e *expansion) merge(src *expansion, maxElements int) {
	for i, code := range src.order {
		if maxElements != Unlimited && i >= maxElements {
			break
		}
		e.add(code, src.caps[code])
	}
}

func (e *expansion) coverage() Coverage {
	out := make(Coverage, len(e.caps))
	for code, cap := range e.caps {
		out[code] = cap
	}
	return out
}

func widerCap(a, b int) int {
	if a == Unlimited || b == Unlimited {
		return Unlimited
	}
	if b > a {
		return b
	}
	return a
}

// Expander computes full tier coverages against one snapshot, memoizing per
// tier for the lifetime of a resolution batch. A shared ExpansionCache may be
// attached to reuse expansions across batches; entries are keyed by catalog
// version so stale snapshots never leak through.
type Expander struct {
	snap  *Snapshot
	cache *ExpansionCache
	memo  map[string]*expansion
}

// NewExpander returns an expander for one resolution batch. cache may be nil.
func NewExpander(snap *Snapshot, cache *ExpansionCache) *Expander {
	return &Expander{
		snap:  snap,
		cache: cache,
		memo:  map[string]*expansion{},
	}
}

// Expand computes the full (element, max quantity) coverage the tier grants,
// following tier references recursively. It fails with *CycleError when the
// reference graph re-enters a tier already on the expansion stack and with
// *UnknownTierError when a reference points at a tier the snapshot lacks.
func (x *Expander) Expand(tierCode string) (Coverage, error) {
	exp, err := x.expand(tierCode, nil)
	if err != nil {
		return nil, err
	}
	return exp.coverage(), nil
}

func (x *Expander) expand(tierCode string, stack []string) (*expansion, error) {
	if exp, ok := x.memo[tierCode]; ok {
		return exp, nil
	}
	if exp, ok := x.cacheGet(tierCode); ok {
		x.memo[tierCode] = exp
		return exp, nil
	}
	for _, on := range stack {
		if on == tierCode {
			return nil, &CycleError{Category: x.snap.Category, Path: append(append([]string{}, stack...), tierCode)}
		}
	}

	tier := x.snap.Tier(tierCode)
	if tier == nil {
		return nil, &UnknownTierError{Category: x.snap.Category, TierCode: tierCode}
	}

	stack = append(stack, tierCode)
	exp := newExpansion()
	for _, inc := range tier.Inclusions {
		exp.add(inc.ElementCode, inc.MaxQuantity)
	}
	for _, ref := range tier.References {
		sub, err := x.expand(ref.TierCode, stack)
		if err != nil {
			return nil, err
		}
		exp.merge(sub, ref.MaxElements)
	}

	x.memo[tierCode] = exp
	x.cachePut(tierCode, exp)
	return exp, nil
}

func (x *Expander) cacheGet(tierCode string) (*expansion, bool) {
	if x.cache == nil {
		return nil, false
	}
	return x.cache.get(x.snap.Category, x.snap.Version, tierCode)
}

func (x *Expander) cachePut(tierCode string, exp *expansion) {
	if x.cache == nil {
		return
	}
	x.cache.put(x.snap.Category, x.snap.Version, tierCode, exp)
}

// Expand is the single-shot form for callers outside a batch.
func Expand(snap *Snapshot, tierCode string) (Coverage, error) {
	return NewExpander(snap, nil).Expand(tierCode)
}
