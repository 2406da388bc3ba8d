// Package resource provides the paginated collection store behind every
// list view: it owns the current query, the fetched page and the
// loading/error flags, and re-fetches whenever the query changes.
//
// Only the most recently issued fetch may update the state. Starting a new
// fetch cancels the previous one; a fetch that finishes after being
// replaced returns ErrSuperseded and leaves the state alone.
//
// Subscribers see state changes in order. Delivery is coalesced: while one
// goroutine is running the callbacks, newer snapshots replace the pending
// one, and a snapshot older than the last delivered one is never sent.
package resource

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

var (
	ErrSuperseded = errors.New("superseded by a newer request")
	ErrNoPage     = errors.New("no such page")
)

// Query is the full description of one list request.
type Query[F any] struct {
	Page    int
	Size    int
	SortBy  string
	SortDir models.SortDir
	Filters F
}

func (q Query[F]) PageRequest() models.PageRequest {
	return models.PageRequest{Page: q.Page, Size: q.Size, SortBy: q.SortBy, SortDir: q.SortDir}
}

type Fetcher[T, F any] func(ctx context.Context, q Query[F]) (models.Page[T], error)

// State is a snapshot of a Paginated store.
type State[T, F any] struct {
	Items         []T
	Query         Query[F]
	TotalElements int64
	TotalPages    int
	Loading       bool
	Loaded        bool
	Err           error
}

// HasNext reports whether a page after the current one exists.
func (s State[T, F]) HasNext() bool { return s.Query.Page+1 < s.TotalPages }

type Paginated[T, F any] struct {
	fetch Fetcher[T, F]
	match func(T, F) bool

	mu      sync.Mutex
	state   State[T, F]
	seq     uint64
	cancel  context.CancelFunc
	subs    map[int]func(State[T, F])
	nextSub int

	// delivery, guarded by mu
	version    uint64
	pending    *State[T, F]
	pendingVer uint64
	delivered  uint64
	delivering bool
}

func New[T, F any](fetch Fetcher[T, F], pageSize int) *Paginated[T, F] {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	return &Paginated[T, F]{
		fetch: fetch,
		state: State[T, F]{Items: []T{}, Query: Query[F]{Size: pageSize}},
		subs:  make(map[int]func(State[T, F])),
	}
}

// WithMatcher adds a client-side filter applied to every fetched page.
func (p *Paginated[T, F]) WithMatcher(match func(T, F) bool) *Paginated[T, F] {
	p.mu.Lock()
	p.match = match
	p.mu.Unlock()
	return p
}

// Subscribe registers fn for every state change and returns a function that
// removes it.
func (p *Paginated[T, F]) Subscribe(fn func(State[T, F])) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Paginated[T, F]) Snapshot() State[T, F] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Load fetches the page described by the current query.
func (p *Paginated[T, F]) Load(ctx context.Context) error {
	return p.update(ctx, func(*Query[F]) {})
}

func (p *Paginated[T, F]) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		return ErrNoPage
	}
	return p.update(ctx, func(q *Query[F]) { q.Page = page })
}

func (p *Paginated[T, F]) SetPageSize(ctx context.Context, size int) error {
	if size <= 0 {
		size = models.DefaultPageSize
	}
	return p.update(ctx, func(q *Query[F]) {
		q.Size = size
		q.Page = 0
	})
}

func (p *Paginated[T, F]) SetSort(ctx context.Context, by string, dir models.SortDir) error {
	return p.update(ctx, func(q *Query[F]) {
		q.SortBy = by
		q.SortDir = dir
	})
}

func (p *Paginated[T, F]) SetFilters(ctx context.Context, f F) error {
	return p.update(ctx, func(q *Query[F]) {
		q.Filters = f
		q.Page = 0
	})
}

func (p *Paginated[T, F]) NextPage(ctx context.Context) error {
	s := p.Snapshot()
	if !s.HasNext() {
		return ErrNoPage
	}
	return p.SetPage(ctx, s.Query.Page+1)
}

func (p *Paginated[T, F]) PrevPage(ctx context.Context) error {
	s := p.Snapshot()
	if s.Query.Page == 0 {
		return ErrNoPage
	}
	return p.SetPage(ctx, s.Query.Page-1)
}

// Close cancels the fetch in flight, if any.
func (p *Paginated[T, F]) Close() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.seq++
	if !p.state.Loading {
		p.mu.Unlock()
		return
	}
	p.state.Loading = false
	p.publishLocked()
	p.mu.Unlock()
	p.deliver()
}

func (p *Paginated[T, F]) update(ctx context.Context, change func(*Query[F])) error {
	p.mu.Lock()
	change(&p.state.Query)
	p.seq++
	token := p.seq
	if p.cancel != nil {
		p.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	q := p.state.Query
	p.state.Loading = true
	p.publishLocked()
	p.mu.Unlock()
	p.deliver()

	page, err := p.fetch(fctx, q)

	p.mu.Lock()
	if token != p.seq {
		p.mu.Unlock()
		cancel()
		return ErrSuperseded
	}
	cancel()
	p.cancel = nil

	if err != nil {
		p.state.Items = []T{}
		p.state.TotalElements = 0
		p.state.TotalPages = 0
		p.state.Err = err
	} else {
		items := page.Content
		if p.match != nil {
			items = slices.DeleteFunc(slices.Clone(items), func(it T) bool { return !p.match(it, q.Filters) })
		}
		if items == nil {
			items = []T{}
		}
		p.state.Items = items
		p.state.TotalElements = page.TotalElements
		p.state.TotalPages = page.TotalPages
		p.state.Err = nil
	}
	p.state.Loading = false
	p.state.Loaded = true
	p.publishLocked()
	p.mu.Unlock()
	p.deliver()
	return err
}

func (p *Paginated[T, F]) snapshotLocked() State[T, F] {
	s := p.state
	s.Items = slices.Clone(p.state.Items)
	return s
}

// publishLocked queues the current state for subscribers, replacing any
// snapshot not yet delivered.
func (p *Paginated[T, F]) publishLocked() {
	p.version++
	snap := p.snapshotLocked()
	p.pending = &snap
	p.pendingVer = p.version
}

// deliver runs the subscribers for the pending snapshot. If another
// goroutine is already delivering, it returns at once; that goroutine picks
// up the newest snapshot after its current round.
func (p *Paginated[T, F]) deliver() {
	p.mu.Lock()
	if p.delivering {
		p.mu.Unlock()
		return
	}
	p.delivering = true

	for p.pending != nil && p.pendingVer > p.delivered {
		snap := *p.pending
		p.delivered = p.pendingVer
		p.pending = nil

		fns := make([]func(State[T, F]), 0, len(p.subs))
		for id := 0; id < p.nextSub; id++ {
			if fn, ok := p.subs[id]; ok {
				fns = append(fns, fn)
			}
		}

		p.mu.Unlock()
		for _, fn := range fns {
			fn(snap)
		}
		p.mu.Lock()
	}

	p.pending = nil
	p.delivering = false
	p.mu.Unlock()
}
