package isearch

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config describes one search widget driven by Search.
type Config[T any] struct {
	Settings[T]

	// FetchPage is required.
	FetchPage FetchFunc[T]
	// Debounce is the quiet window; DefaultDebounce when zero.
	Debounce time.Duration

	// Callbacks run on the event-loop goroutine and must not block or call
	// Close.
	OnChange  func(State[T])
	OnSelect  func(SelectEvent[T])
	OnWarning func(error)
}

// Option customizes a Search.
type Option func(*options)

type options struct {
	logger *zap.Logger
	queue  int
}

// WithLogger sets the logger used for discarded responses and fetch failures.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithQueueSize sets the event queue capacity.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queue = n
		}
	}
}

// Stats counts fetch outcomes of a Search.
type Stats struct {
	Fetches   int
	Failures  int
	Discarded int
}

// Search drives a Machine from one event-loop goroutine. Keystrokes go
// through a Debouncer, fetches run on their own goroutines with a
// cancellable context, and every outcome is applied back on the loop.
type Search[T any] struct {
	cfg      Config[T]
	logger   *zap.Logger
	machine  *Machine[T]
	debounce *Debouncer

	actions chan func()
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once

	// Owned by the loop goroutine.
	cancels map[uint64]context.CancelFunc
	running int
	stats   Stats

	mu       sync.RWMutex
	snapshot State[T]
	counters Stats
}

// New starts a Search. Call Close when the widget goes away.
func New[T any](cfg Config[T], opts ...Option) (*Search[T], error) {
	if cfg.FetchPage == nil {
		return nil, ErrNoFetcher
	}
	o := options{logger: zap.NewNop(), queue: 64}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Search[T]{
		cfg:     cfg,
		logger:  o.logger,
		machine: NewMachine(cfg.Settings),
		actions: make(chan func(), o.queue),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
		cancels: make(map[uint64]context.CancelFunc),
	}
	s.debounce = NewDebouncer(cfg.Debounce, func(value string) {
		s.post(func() { s.settle(value) })
	})
	s.snapshot = s.machine.Snapshot()

	s.wg.Add(1)
	go s.loop()
	return s, nil
}

// OnQueryChange feeds a raw keystroke value.
func (s *Search[T]) OnQueryChange(raw string) {
	if s.post(func() { s.machine.QueryChanged(raw) }) {
		s.debounce.Push(raw)
	}
}

// Flush settles a pending query without waiting for the quiet window.
func (s *Search[T]) Flush() {
	s.debounce.Flush()
}

// OnScrollSentinelVisible requests the next page when one exists and no
// fetch is running.
func (s *Search[T]) OnScrollSentinelVisible() {
	s.post(func() {
		if req, ok := s.machine.SentinelVisible(); ok {
			s.start(req)
		}
	})
}

// OnSelect commits item.
func (s *Search[T]) OnSelect(item T) {
	s.post(func() {
		ev, err := s.machine.Select(item)
		if errors.Is(err, ErrAlreadySelected) {
			return
		}
		if err != nil {
			s.logger.Debug("selection rejected", zap.Error(err))
			if s.cfg.OnWarning != nil {
				s.cfg.OnWarning(err)
			}
			return
		}
		s.debounce.Cancel()
		if s.cfg.OnSelect != nil {
			s.cfg.OnSelect(ev)
		}
	})
}

// Deselect removes the item with key from a multi selection.
func (s *Search[T]) Deselect(key string) {
	s.post(func() { s.machine.Deselect(key) })
}

// Open shows the result panel.
func (s *Search[T]) Open() {
	s.post(func() {
		if req, ok := s.machine.Open(); ok {
			s.start(req)
		}
	})
}

// Blur closes the result panel.
func (s *Search[T]) Blur() {
	s.post(s.machine.Blur)
}

// Retry re-issues the last failed request.
func (s *Search[T]) Retry() {
	s.post(func() {
		if req, ok := s.machine.Retry(); ok {
			s.start(req)
		}
	})
}

// State returns the latest snapshot.
func (s *Search[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Stats returns fetch counters.
func (s *Search[T]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters
}

// WaitIdle blocks until no query is waiting to settle and no fetch is running.
func (s *Search[T]) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		idle, err := s.idle()
		if err != nil {
			return err
		}
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return ErrClosed
		case <-ticker.C:
		}
	}
}

// Close stops the debounce timer, cancels running fetches and the loop.
// No callback runs after Close returns.
func (s *Search[T]) Close() {
	s.once.Do(func() {
		s.debounce.Stop()
		close(s.done)
		s.cancel()
		s.wg.Wait()
	})
}

func (s *Search[T]) idle() (bool, error) {
	if s.debounce.Pending() {
		return false, nil
	}
	reply := make(chan bool, 1)
	if !s.post(func() { reply <- s.running == 0 }) {
		return false, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return false, ErrClosed
	}
}

func (s *Search[T]) post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.actions <- fn:
		return true
	case <-s.done:
		return false
	}
}

func (s *Search[T]) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.actions:
			select {
			case <-s.done:
				return
			default:
			}
			fn()
			s.publish()
		}
	}
}

func (s *Search[T]) publish() {
	snap := s.machine.Snapshot()
	s.mu.Lock()
	s.snapshot = snap
	s.counters = s.stats
	s.mu.Unlock()
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(snap)
	}
}

// settle runs for every debounced value. A value that no longer matches the
// input was overtaken by a later keystroke whose own settle is on the way.
func (s *Search[T]) settle(value string) {
	if value != s.machine.Raw() {
		return
	}
	req, ok := s.machine.Settle(s.machine.Generation())
	if !ok {
		if !s.machine.InFlight() {
			s.cancelAll()
		}
		return
	}
	s.start(req)
}

func (s *Search[T]) start(req Request) {
	if req.First() {
		s.cancelAll()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancels[req.Token] = cancel
	s.running++
	s.stats.Fetches++
	s.logger.Debug("fetch page",
		zap.Uint64("token", req.Token),
		zap.String("query", req.Query),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
	)

	fetch := s.cfg.FetchPage
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		res, err := fetch(ctx, req)
		s.post(func() { s.resolve(req, res, err) })
	}()
}

func (s *Search[T]) resolve(req Request, res Result[T], fetchErr error) {
	s.running--
	if cancel, ok := s.cancels[req.Token]; ok {
		cancel()
		delete(s.cancels, req.Token)
	}
	err := s.machine.Resolve(Response[T]{
		Request: req,
		Items:   res.Items,
		HasMore: res.HasMore,
		Err:     fetchErr,
	})
	switch {
	case errors.Is(err, ErrStaleResponse):
		s.stats.Discarded++
		s.logger.Debug("stale response discarded",
			zap.Uint64("token", req.Token),
			zap.String("query", req.Query),
			zap.Int("page", req.Page),
		)
	case err != nil:
		s.stats.Failures++
		s.logger.Warn("page rejected", zap.Int("page", req.Page), zap.Error(err))
	case fetchErr != nil:
		s.stats.Failures++
		s.logger.Debug("fetch failed",
			zap.String("query", req.Query),
			zap.Int("page", req.Page),
			zap.Error(fetchErr),
		)
	}
}

func (s *Search[T]) cancelAll() {
	for token, cancel := range s.cancels {
		cancel()
		delete(s.cancels, token)
	}
}
