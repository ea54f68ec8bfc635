package resolution

import (
	"fmt"
	"strings"
)

// CycleError reports a tier-reference cycle. It signals corrupt catalog data:
// the engine cannot bound the expansion, so the whole selection is aborted and
// the error surfaced for alerting, never skipped.
type CycleError struct {
	Category string
	Path     []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("tier reference cycle in category %s: %s", e.Category, strings.Join(e.Path, " -> "))
}

// UnknownTierError reports a reference to a tier code the snapshot does not
// contain, another admin-data integrity failure.
type UnknownTierError struct {
	Category string
	TierCode string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown tier %s in category %s", e.TierCode, e.Category)
}

// NoTierError is the expected business outcome when no tier covers the full
// request. Unmet lists the element codes no enumerated tier could satisfy at
// the requested quantity, sorted.
type NoTierError struct {
	Category string
	Unmet    []string
}

func (e *NoTierError) Error() string {
	return fmt.Sprintf("no tier in category %s satisfies request, unmet: %s", e.Category, strings.Join(e.Unmet, ", "))
}

// AmbiguousVariantError reports a variant answer that matched zero or several
// of the base element's variants. It is a control-flow pause: the caller asks
// the user again with Options.
type AmbiguousVariantError struct {
	BaseCode string
	Answer   string
	Options  []VariantOption
}

func (e *AmbiguousVariantError) Error() string {
	labels := make([]string, len(e.Options))
	for i, o := range e.Options {
		labels[i] = o.Label
	}
	return fmt.Sprintf("answer %q does not identify a single variant of %s (options: %s)", e.Answer, e.BaseCode, strings.Join(labels, ", "))
}

// UnknownBaseError reports a SelectVariant call for a code with no variants.
type UnknownBaseError struct {
	BaseCode string
}

func (e *UnknownBaseError) Error() string {
	return fmt.Sprintf("element %s has no variants to select from", e.BaseCode)
}
