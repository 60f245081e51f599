// Package isearch implements the incremental search data source behind every
// search-and-select widget in rxmart: a debounced query, a page accumulator
// that merges result pages per query, a fetch coordinator that drops
// responses for superseded requests, and a selection emitter.
//
// Machine is the single-threaded state machine. It is driven either by
// Search (an event-loop goroutine with timers and cancellable fetches) or by
// a bubbletea model that feeds it messages.
package isearch
