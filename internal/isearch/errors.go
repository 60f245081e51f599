package isearch

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleResponse is returned when a response belongs to a superseded request.
	// It is never surfaced in State.Error.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrAlreadySelected is returned by Machine.Select for an item that is
	// already part of a multi selection. Nothing changes.
	ErrAlreadySelected = errors.New("item already selected")

	// ErrSelectionLimit is the sentinel behind SelectionLimitError.
	ErrSelectionLimit = errors.New("selection limit exceeded")

	// ErrPageOutOfOrder is returned by Accumulator.AppendPage for an unexpected page.
	ErrPageOutOfOrder = errors.New("page out of order")

	// ErrNoFetcher is returned by New when Config.FetchPage is nil.
	ErrNoFetcher = errors.New("fetch page function is required")

	// ErrClosed is returned by blocking calls on a closed Search.
	ErrClosed = errors.New("search closed")
)

// SelectionLimitError reports an attempt to select past the configured cap.
type SelectionLimitError struct {
	Max     int
	Message string
}

func (e *SelectionLimitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("selection limit exceeded: at most %d items", e.Max)
}

func (e *SelectionLimitError) Unwrap() error { return ErrSelectionLimit }

// PageError describes a page that does not follow the accumulated ones.
type PageError struct {
	Expected int
	Got      int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page out of order: expected %d, got %d", e.Expected, e.Got)
}

func (e *PageError) Unwrap() error { return ErrPageOutOfOrder }
