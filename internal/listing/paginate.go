package listing

// DefaultPageSize is applied when a requested page size is not an allowed value.
const DefaultPageSize = 10

// PageSizes lists the page sizes the list screens may request.
var PageSizes = []int{5, 10, 20, 50}

// Page is one window of a collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	StartIndex int `json:"start_index"`
}

// Paginate slices records into the requested page window. TotalPages is at
// least 1 even for an empty collection; a page beyond the last returns empty
// Items rather than an error. Pages below 1 are clamped to 1.
func Paginate[T any](records []T, page, pageSize int) Page[T] {
	pageSize = ClampPageSize(pageSize)
	if page < 1 {
		page = 1
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      records[start:end],
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
		StartIndex: (page - 1) * pageSize,
	}
}

// ClampPageSize returns size if it is one of the allowed page sizes, and
// DefaultPageSize otherwise.
func ClampPageSize(size int) int {
	for _, s := range PageSizes {
		if size == s {
			return size
		}
	}
	return DefaultPageSize
}

// PageWindow returns the page numbers to render as buttons: at most five,
// pinned to the start for current <= 3, pinned to the end for
// current >= totalPages-2, and centered on current otherwise.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start, end := 1, totalPages
	if totalPages > 5 {
		switch {
		case current <= 3:
			start, end = 1, 5
		case current >= totalPages-2:
			start, end = totalPages-4, totalPages
		default:
			start, end = current-2, current+2
		}
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
