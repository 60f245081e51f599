package isearch

// Accumulator merges successive result pages of one query into a single
// ordered list.
type Accumulator[T any] struct {
	page   int
	loaded int
	items  []T
}

// NewAccumulator returns an empty accumulator positioned at page 1.
func NewAccumulator[T any]() *Accumulator[T] {
	a := &Accumulator[T]{}
	a.Reset()
	return a
}

// Reset drops every item and moves back to page 1.
func (a *Accumulator[T]) Reset() {
	a.page = 1
	a.loaded = 0
	a.items = nil
}

// AppendPage merges a page. Page 1 always replaces the list. Any other page
// must be the one Advance handed out; otherwise a *PageError is returned
// and nothing changes.
func (a *Accumulator[T]) AppendPage(page int, items []T) error {
	if page == 1 {
		a.items = make([]T, len(items))
		copy(a.items, items)
		a.page = 1
		a.loaded = 1
		return nil
	}
	if a.loaded == 0 || page != a.loaded+1 || page != a.page {
		return &PageError{Expected: a.loaded + 1, Got: page}
	}
	a.items = append(a.items, items...)
	a.loaded = page
	return nil
}

// Advance moves the cursor to the next page and returns it.
func (a *Accumulator[T]) Advance() int {
	a.page++
	return a.page
}

// Rewind moves the cursor back to the last loaded page after a failed load.
func (a *Accumulator[T]) Rewind() {
	if a.page > a.loaded && a.loaded > 0 {
		a.page = a.loaded
	}
}

// Page returns the current page cursor.
func (a *Accumulator[T]) Page() int {
	return a.page
}

// LoadedPages returns how many pages were merged.
func (a *Accumulator[T]) LoadedPages() int {
	return a.loaded
}

// Loaded reports whether at least the first page arrived.
func (a *Accumulator[T]) Loaded() bool {
	return a.loaded > 0
}

// Len returns the number of accumulated items.
func (a *Accumulator[T]) Len() int {
	return len(a.items)
}

// Items returns a copy of the accumulated items.
func (a *Accumulator[T]) Items() []T {
	if a.items == nil {
		return nil
	}
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}
