package store

// Pageable is a page request: zero-based page index and page size.
type Pageable struct {
	Page int
	Size int
}

// NewPageable clamps the raw values into a usable request.
func NewPageable(page, size int) Pageable {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}
	return Pageable{Page: page, Size: size}
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Page is one page of results plus the counts the templates need for
// pagination controls.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalCount int
}

// TotalPages derives the page count; an empty result is one empty page.
func (p Page[T]) TotalPages() int {
	if p.TotalCount == 0 {
		return 1
	}
	return (p.TotalCount + p.Size - 1) / p.Size
}

func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 0
}

// Next and Prev are the zero-based neighbours for pagination links;
// Display is the one-based number shown to people.
func (p Page[T]) Next() int    { return p.Number + 1 }
func (p Page[T]) Prev() int    { return p.Number - 1 }
func (p Page[T]) Display() int { return p.Number + 1 }
