package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/isearch"
)

// ErrCursorUnknown is returned when a cursor-based endpoint is asked for a
// page whose predecessor was never fetched for the same query.
var ErrCursorUnknown = errors.New("catalog: no cursor for requested page")

// Style is how an endpoint paginates.
type Style int

const (
	// PageStyle endpoints take a 1-based page number.
	PageStyle Style = iota
	// CursorStyle endpoints take the last id of the previous page.
	CursorStyle
)

func (s Style) String() string {
	if s == CursorStyle {
		return "cursor"
	}
	return "page"
}

// Record is what every API type exposes to the search widgets.
type Record interface {
	SearchKey() string
	SearchLabel() string
}

// Lister fetches one raw page from the API.
type Lister[T any] func(ctx context.Context, client *api.Client, params api.ListParams) (*api.Page[T], error)

// Source binds one list endpoint to the search widgets.
type Source[T Record] struct {
	Name       string
	Title      string
	Path       string
	QueryParam string
	Style      Style

	// List defaults to api.ListPage on Path.
	List Lister[T]
	// Adapt defaults to the adapter matching Style.
	Adapt Adapter[T]
	// Detail renders the secondary column.
	Detail func(T) string
}

// Fetcher returns a FetchFunc that always speaks 1-based page numbers. Each
// call returns an independent cursor chain, so one Fetcher serves one widget.
func (s Source[T]) Fetcher(client *api.Client) isearch.FetchFunc[T] {
	list := s.lister()
	adapt := s.adapter()
	chain := &cursorChain{}

	return func(ctx context.Context, req isearch.Request) (isearch.Result[T], error) {
		params := api.ListParams{Query: req.Query, Limit: req.Limit}
		if s.Style == CursorStyle {
			if req.First() {
				chain.reset(req.Query)
			} else {
				last, ok := chain.cursor(req.Query, req.Page)
				if !ok {
					return isearch.Result[T]{}, fmt.Errorf("%s page %d: %w", s.Name, req.Page, ErrCursorUnknown)
				}
				params.Last = last
			}
		} else {
			params.Page = req.Page
		}

		page, err := list(ctx, client, params)
		if err != nil {
			return isearch.Result[T]{}, err
		}
		items, hasMore := adapt(page, req)
		if s.Style == CursorStyle && hasMore {
			chain.record(req.Query, req.Page+1, page.Paging.Last)
		}
		return isearch.Result[T]{Items: items, HasMore: hasMore}, nil
	}
}

// Items is Fetcher with every record converted to an Item.
func (s Source[T]) Items(client *api.Client) isearch.FetchFunc[Item] {
	fetch := s.Fetcher(client)
	return func(ctx context.Context, req isearch.Request) (isearch.Result[Item], error) {
		res, err := fetch(ctx, req)
		if err != nil {
			return isearch.Result[Item]{}, err
		}
		items := make([]Item, len(res.Items))
		for i, v := range res.Items {
			items[i] = s.Item(v)
		}
		return isearch.Result[Item]{Items: items, HasMore: res.HasMore}, nil
	}
}

// Item builds the generic view of v.
func (s Source[T]) Item(v T) Item {
	item := Item{Kind: s.Name, Key: v.SearchKey(), Label: v.SearchLabel(), Value: v}
	if s.Detail != nil {
		item.Detail = s.Detail(v)
	}
	return item
}

// ResourceName implements Resource.
func (s Source[T]) ResourceName() string { return s.Name }

// ResourceTitle implements Resource.
func (s Source[T]) ResourceTitle() string { return s.Title }

func (s Source[T]) lister() Lister[T] {
	if s.List != nil {
		return s.List
	}
	path, key := s.Path, s.QueryParam
	return func(ctx context.Context, client *api.Client, params api.ListParams) (*api.Page[T], error) {
		return api.ListPage[T](ctx, client, path, params.QueryParams(key))
	}
}

func (s Source[T]) adapter() Adapter[T] {
	switch {
	case s.Adapt != nil:
		return s.Adapt
	case s.Style == CursorStyle:
		return CursorAdapter[T]
	default:
		return PageAdapter[T]
	}
}

// cursorChain remembers, for the latest query only, the cursor that opens
// each page.
type cursorChain struct {
	mu      sync.Mutex
	query   string
	cursors map[int]api.Cursor
}

func (c *cursorChain) reset(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.cursors = map[int]api.Cursor{}
}

func (c *cursorChain) record(query string, page int, last api.Cursor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if query != c.query || c.cursors == nil || last == "" {
		return
	}
	c.cursors[page] = last
}

func (c *cursorChain) cursor(query string, page int) (api.Cursor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if query != c.query {
		return "", false
	}
	last, ok := c.cursors[page]
	return last, ok
}
