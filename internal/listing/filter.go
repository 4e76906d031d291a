// Package listing implements the in-process filtering and pagination engines
// the list screens run over their fetched collections.
package listing

import (
	"strings"
	"time"
)

// FilterState is the transient filter a list screen applies to its collection.
// Zero values impose no constraint on their predicate.
type FilterState struct {
	Search string
	Status string
	From   time.Time
	To     time.Time
}

// IsZero reports whether the filter imposes no constraints at all.
func (f FilterState) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.From.IsZero() && f.To.IsZero()
}

// Accessors supplies the record projections the filter predicates run on.
// A nil accessor disables its predicate for the record type.
type Accessors[T any] struct {
	// SearchFields returns the stringified values searched by the free-text
	// predicate. Numeric fields must be stringified by the caller.
	SearchFields func(T) []string
	// Status returns the record's status value.
	Status func(T) string
	// Date returns the record's relevant date for range filtering.
	Date func(T) time.Time
}

// Filter returns the records matching every active predicate, preserving the
// input order. Filtering is stable and idempotent; an all-zero FilterState
// returns every record.
func Filter[T any](records []T, f FilterState, acc Accessors[T]) []T {
	out := make([]T, 0, len(records))
	search := strings.ToLower(f.Search)
	for _, rec := range records {
		if !matchesSearch(rec, search, acc.SearchFields) {
			continue
		}
		if !matchesStatus(rec, f.Status, acc.Status) {
			continue
		}
		if !matchesDateRange(rec, f.From, f.To, acc.Date) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch[T any](rec T, search string, fields func(T) []string) bool {
	if search == "" || fields == nil {
		return true
	}
	for _, v := range fields(rec) {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func matchesStatus[T any](rec T, status string, get func(T) string) bool {
	if status == "" || get == nil {
		return true
	}
	return strings.EqualFold(get(rec), status)
}

// matchesDateRange checks the inclusive [from, to] range. The to bound covers
// the whole final day, so the comparison uses to+24h as an exclusive upper
// bound.
func matchesDateRange[T any](rec T, from, to time.Time, get func(T) time.Time) bool {
	if get == nil {
		return true
	}
	d := get(rec)
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && !d.Before(to.Add(24*time.Hour)) {
		return false
	}
	return true
}
