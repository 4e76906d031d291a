package service

import "agrodesk/internal/listing"

// ListOptions carries the filter and page state a list screen sends with a
// fetch. Refresh bypasses the staleness cache.
type ListOptions struct {
	Filter   listing.FilterState
	Page     int
	PageSize int
	Refresh  bool
}
