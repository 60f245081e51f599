package isearch

// FetchState is the network side of a widget.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchLoading
	FetchLoadingMore
	FetchError
)

func (s FetchState) String() string {
	switch s {
	case FetchLoading:
		return "loading"
	case FetchLoadingMore:
		return "loading_more"
	case FetchError:
		return "error"
	default:
		return "idle"
	}
}

// Request identifies one page fetch. Token grows monotonically per widget.
type Request struct {
	Token uint64
	Query string
	Page  int
	Limit int
}

// First reports whether the request is for the first page of a query.
func (r Request) First() bool {
	return r.Page <= 1
}

// Coordinator hands out request tokens and tracks the fetch state. Only the
// most recently issued token may resolve.
type Coordinator struct {
	limit    int
	token    uint64
	current  Request
	inFlight bool
	state    FetchState
	hasMore  bool
	err      string
}

// NewCoordinator returns an idle coordinator that stamps requests with limit.
func NewCoordinator(limit int) *Coordinator {
	return &Coordinator{limit: limit}
}

// Begin issues a new request. It supersedes every earlier request.
func (c *Coordinator) Begin(query string, page int) Request {
	c.token++
	req := Request{Token: c.token, Query: query, Page: page, Limit: c.limit}
	c.current = req
	c.inFlight = true
	c.err = ""
	if req.First() {
		c.state = FetchLoading
		c.hasMore = false
	} else {
		c.state = FetchLoadingMore
	}
	return req
}

// Accept checks that req is the in-flight request.
func (c *Coordinator) Accept(req Request) error {
	if !c.inFlight || req.Token != c.token {
		return ErrStaleResponse
	}
	return nil
}

// Succeed resolves the in-flight request.
func (c *Coordinator) Succeed(hasMore bool) {
	c.inFlight = false
	c.state = FetchIdle
	c.hasMore = hasMore
	c.err = ""
}

// Fail resolves the in-flight request with an error. hasMore is kept so a
// failed "load more" can be retried.
func (c *Coordinator) Fail(err error) {
	c.inFlight = false
	c.state = FetchError
	if err != nil {
		c.err = err.Error()
	} else {
		c.err = "request failed"
	}
}

// Cancel supersedes the in-flight request without issuing a new one.
func (c *Coordinator) Cancel() {
	if c.inFlight {
		c.token++
		c.inFlight = false
	}
	c.state = FetchIdle
	c.hasMore = false
	c.err = ""
}

// DismissError clears the error message and leaves everything else alone.
func (c *Coordinator) DismissError() {
	c.err = ""
	if c.state == FetchError {
		c.state = FetchIdle
	}
}

func (c *Coordinator) State() FetchState { return c.state }
func (c *Coordinator) InFlight() bool { return c.inFlight }
func (c *Coordinator) HasMore() bool { return c.hasMore }
func (c *Coordinator) Err() string { return c.err }
func (c *Coordinator) Token() uint64 { return c.token }
func (c *Coordinator) Current() Request { return c.current }

// Loading reports a first-page fetch in flight.
func (c *Coordinator) Loading() bool {
	return c.inFlight && c.state == FetchLoading
}

// LoadingMore reports a follow-up page fetch in flight.
func (c *Coordinator) LoadingMore() bool {
	return c.inFlight && c.state == FetchLoadingMore
}

// CanLoadMore reports whether a next-page fetch may be issued now.
func (c *Coordinator) CanLoadMore() bool {
	return c.hasMore && !c.inFlight
}
