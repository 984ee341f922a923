package feedclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// state is the controller's fetch state machine. Exactly one state is
// active at a time; boolean flag combinations cannot drift apart.
type state int

const (
	// stateIdle: no fetch in flight. The controller may be empty (before
	// the first SetQuery) or holding a loaded page run.
	stateIdle state = iota
	// stateLoadingFirst: the first page of a fresh query session is in flight.
	stateLoadingFirst
	// stateLoadingMore: a follow-up page is in flight; loaded items stay visible.
	stateLoadingMore
	// stateFailed: the last fetch failed. Items and cursor are preserved so
	// LoadNext can retry the same page.
	stateFailed
)

// Config configures a Controller.
type Config[T any] struct {
	// DefaultLimit is the page size used when Query.Limit is zero.
	// Defaults to 24.
	DefaultLimit int
	// MaxLimit caps Query.Limit. Defaults to 100.
	MaxLimit int
	// RequestTimeout bounds a single page fetch. Defaults to 15 seconds.
	// Zero keeps the default; negative disables the timeout.
	RequestTimeout time.Duration
	// OnChange, if set, is invoked with a fresh snapshot after every state
	// change. It runs synchronously on the goroutine that caused the
	// change, so implementations must not call back into the controller
	// and should hand off to their own event loop quickly.
	OnChange func(Snapshot[T])
}

const (
	defaultLimit          = 24
	defaultMaxLimit       = 100
	defaultRequestTimeout = 15 * time.Second
)

func (c Config[T]) withDefaults() Config[T] {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = defaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = defaultMaxLimit
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return c
}

// Controller coordinates an infinite-scroll feed over a Source.
//
// Guarantees, per query session:
//   - at most one page fetch is in flight at any time, and page N+1 is
//     never requested before page N has been applied
//   - accumulated items never contain two entries with the same ID
//   - a response belonging to a superseded session is discarded entirely,
//     including its error
//
// All methods are safe for concurrent use.
type Controller[T any] struct {
	source Source[T]
	idOf   func(T) string
	cfg    Config[T]

	mu      sync.Mutex
	st      state
	query   Query
	items   []T
	seen    map[string]struct{}
	page    int // next page to request (1-based)
	hasMore bool
	total   int64
	err     error
	session uint64 // bumped by SetQuery and Close; stale fetches fail the check
	cancel  context.CancelFunc
}

// Snapshot is an immutable view of the controller state for presentation.
type Snapshot[T any] struct {
	// Items are the accumulated, de-duplicated feed items in arrival order.
	Items []T
	// Query is the active query session.
	Query Query
	// Loading is true while the first page of a session is in flight.
	Loading bool
	// LoadingMore is true while a follow-up page is in flight.
	LoadingMore bool
	// HasMore reports whether another page can be requested. While the
	// controller is in the failed state this is conservatively false;
	// LoadNext still retries the failed page.
	HasMore bool
	// Err is the error of the last failed fetch, nil otherwise. It is
	// cleared when a retry or a new query starts.
	Err error
	// TotalCount is the server-reported size of the full result set.
	TotalCount int64
}

// New creates a Controller over the source. idOf extracts the stable
// identity used for de-duplication.
func New[T any](source Source[T], idOf func(T) string, cfg Config[T]) *Controller[T] {
	if source == nil {
		panic("feedclient: nil source")
	}
	if idOf == nil {
		panic("feedclient: nil idOf")
	}
	return &Controller[T]{
		source: source,
		idOf:   idOf,
		cfg:    cfg.withDefaults(),
	}
}

// SetQuery starts a new query session: any in-flight fetch is canceled and
// its eventual response discarded, accumulated items and seen IDs are
// cleared, the page cursor resets to 1, and the first page is fetched.
func (c *Controller[T]) SetQuery(q Query) {
	q = q.normalized(c.cfg.DefaultLimit, c.cfg.MaxLimit)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.session++
	session := c.session
	c.query = q
	c.items = nil
	c.seen = make(map[string]struct{})
	c.page = 1
	c.hasMore = true
	c.total = 0
	c.err = nil
	c.st = stateLoadingFirst
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	c.notify()
	go c.fetch(ctx, session, q, 1)
}

// LoadNext fetches the next page of the current session. It is a no-op
// when a fetch is already in flight, when the feed is exhausted, or before
// the first SetQuery. After a failure it retries the same page, clearing
// the error.
func (c *Controller[T]) LoadNext() {
	c.mu.Lock()
	switch c.st {
	case stateLoadingFirst, stateLoadingMore:
		c.mu.Unlock()
		return
	case stateIdle:
		if c.page == 0 || !c.hasMore {
			c.mu.Unlock()
			return
		}
	case stateFailed:
		// Retry the page that failed. The exhaustion guard is skipped on
		// purpose: the stored hasMore reflects the state before the
		// failure, and the retry must reach the server again.
	}

	c.err = nil
	session := c.session
	q := c.query
	page := c.page
	if page <= 1 {
		c.st = stateLoadingFirst
	} else {
		c.st = stateLoadingMore
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	c.notify()
	go c.fetch(ctx, session, q, page)
}

// NotifyNearEnd signals that the presentation layer is close to the end of
// the rendered list (the infinite-scroll sentinel fired). It behaves
// exactly like LoadNext, including all of its guards, so redundant
// sentinel events are harmless.
func (c *Controller[T]) NotifyNearEnd() {
	c.LoadNext()
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any in-flight fetch and detaches its eventual response.
// The controller can be reused with SetQuery afterwards.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.session++
	if c.st == stateLoadingFirst || c.st == stateLoadingMore {
		c.st = stateIdle
	}
	c.mu.Unlock()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)

	hasMore := c.hasMore
	if c.st == stateFailed {
		// 失敗中は保守的に false を報告する
		hasMore = false
	}

	return Snapshot[T]{
		Items:       items,
		Query:       c.query,
		Loading:     c.st == stateLoadingFirst,
		LoadingMore: c.st == stateLoadingMore,
		HasMore:     hasMore,
		Err:         c.err,
		TotalCount:  c.total,
	}
}

func (c *Controller[T]) notify() {
	if c.cfg.OnChange == nil {
		return
	}
	c.cfg.OnChange(c.Snapshot())
}

// fetch runs on its own goroutine: one page request, then apply.
func (c *Controller[T]) fetch(ctx context.Context, session uint64, q Query, page int) {
	if c.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()
	}

	result, err := c.source.FetchPage(ctx, q, page)
	c.apply(session, q, page, result, err)
}

// apply folds one fetch outcome into the controller state. Responses from
// superseded sessions are dropped before touching anything.
func (c *Controller[T]) apply(session uint64, q Query, page int, result Page[T], err error) {
	c.mu.Lock()
	if session != c.session {
		c.mu.Unlock()
		return
	}
	c.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Canceled fetches are not surfaced as errors.
			c.st = stateIdle
			c.mu.Unlock()
			c.notify()
			return
		}
		c.st = stateFailed
		c.err = err
		c.mu.Unlock()
		c.notify()
		return
	}

	netNew := 0
	for _, item := range result.Items {
		id := c.idOf(item)
		if _, dup := c.seen[id]; dup {
			continue
		}
		c.seen[id] = struct{}{}
		c.items = append(c.items, item)
		netNew++
	}

	c.total = result.TotalCount
	c.page = page + 1
	c.hasMore = nextPageExists(len(result.Items), netNew, q.Limit, page, result.TotalPages)
	c.err = nil
	c.st = stateIdle
	c.mu.Unlock()
	c.notify()
}

// nextPageExists decides whether another page is worth requesting after a
// successful fetch:
//   - a short or empty raw page means the server ran out
//   - reaching the reported page count means the server ran out
//   - a page that de-duplicated down to nothing means the feed is only
//     repeating itself (seen with overlapping pages under shifting data or
//     random ordering)
func nextPageExists(rawCount, netNew, limit, page, totalPages int) bool {
	if rawCount < limit || rawCount == 0 {
		return false
	}
	if page >= totalPages {
		return false
	}
	return netNew > 0
}
