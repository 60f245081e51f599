package catalog

import (
	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/isearch"
)

// Adapter reduces a raw API page to items and a next-page flag.
type Adapter[T any] func(page *api.Page[T], req isearch.Request) ([]T, bool)

// PageAdapter reads total_page, then paging.next. Only a response without
// any paging metadata falls back to a full page meaning there may be more.
func PageAdapter[T any](page *api.Page[T], req isearch.Request) ([]T, bool) {
	if page == nil {
		return nil, false
	}
	p := page.Paging
	current := p.Page
	if current <= 0 {
		current = req.Page
	}
	switch {
	case p.TotalPage > 0:
		return page.Items, current < p.TotalPage
	case p.Next:
		return page.Items, true
	case p.Present:
		return page.Items, false
	case req.Limit > 0:
		return page.Items, len(page.Items) >= req.Limit
	default:
		return page.Items, false
	}
}

// CursorAdapter trusts paging.next, and needs a cursor to continue.
func CursorAdapter[T any](page *api.Page[T], _ isearch.Request) ([]T, bool) {
	if page == nil {
		return nil, false
	}
	return page.Items, page.Paging.Next && page.Paging.Last != ""
}
