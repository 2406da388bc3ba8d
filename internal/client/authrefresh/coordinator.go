// Package authrefresh coordinates session refreshes for concurrent requests.
//
// The first request that fails with 401 starts a refresh; requests failing
// while it runs wait for its outcome instead of starting their own. On
// success every waiting request is replayed once. On failure all of them
// fail with the same *RefreshError and a single redirect to the login route
// is scheduled.
package authrefresh

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/logging"
)

// ErrAuthRequired is returned when a request that was already replayed after
// a refresh is rejected again.
var ErrAuthRequired error = &authError{msg: "authentication required"}

type authError struct{ msg string }

func (e *authError) Error() string   { return e.msg }
func (e *authError) HTTPStatus() int { return http.StatusUnauthorized }

// RefreshError is delivered to every request that waited on a failed refresh.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string   { return "session refresh failed: " + e.Err.Error() }
func (e *RefreshError) Unwrap() error   { return e.Err }
func (e *RefreshError) HTTPStatus() int { return http.StatusUnauthorized }

// Call is one request as seen by the coordinator.
type Call interface {
	Send(ctx context.Context) error
	Retried() bool
	MarkRetried()
}

// Refresher renews the session credentials.
type Refresher func(ctx context.Context) error

type State int

const (
	Idle State = iota
	Refreshing
)

func (s State) String() string {
	if s == Refreshing {
		return "refreshing"
	}
	return "idle"
}

const (
	DefaultRedirectDelay  = 1500 * time.Millisecond
	DefaultRefreshTimeout = 30 * time.Second
)

type Coordinator struct {
	refresh        Refresher
	isUnauthorized func(error) bool
	log            logging.Logger
	nav            router.Navigator
	redirectDelay  time.Duration
	refreshTimeout time.Duration
	schedule       func(time.Duration, func())

	mu              sync.Mutex
	state           State
	waiters         []chan error
	redirectPending bool
}

type Option func(*Coordinator)

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithNavigator sets where the login redirect goes after a failed refresh.
func WithNavigator(n router.Navigator) Option {
	return func(c *Coordinator) { c.nav = n }
}

func WithRedirectDelay(d time.Duration) Option {
	return func(c *Coordinator) { c.redirectDelay = d }
}

// WithRefreshTimeout bounds the refresh call, which does not inherit the
// initiating request's cancellation.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.refreshTimeout = d }
}

func New(refresh Refresher, isUnauthorized func(error) bool, opts ...Option) *Coordinator {
	c := &Coordinator{
		refresh:        refresh,
		isUnauthorized: isUnauthorized,
		log:            logging.Nop(),
		redirectDelay:  DefaultRedirectDelay,
		refreshTimeout: DefaultRefreshTimeout,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExecuteWithAuthRecovery sends call and, on a 401, joins or starts a
// refresh and replays the call once.
func (c *Coordinator) ExecuteWithAuthRecovery(ctx context.Context, call Call) error {
	err := call.Send(ctx)
	if err == nil || !c.isUnauthorized(err) {
		return err
	}
	if call.Retried() {
		return ErrAuthRequired
	}
	call.MarkRetried()

	if err := c.awaitRefresh(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.ExecuteWithAuthRecovery(ctx, call)
}

func (c *Coordinator) awaitRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.state == Refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.state = Refreshing
	c.mu.Unlock()

	c.log.Debug(ctx, "refreshing session")
	err := c.runRefresh(ctx)

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.state = Idle
	var result error
	if err != nil {
		result = &RefreshError{Err: err}
		c.scheduleRedirectLocked()
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn(ctx, "session refresh failed", "error", err, "waiters", len(waiters))
	} else {
		c.log.Debug(ctx, "session refreshed", "waiters", len(waiters))
	}

	// buffered, so a waiter that already gave up does not block us
	for _, ch := range waiters {
		ch <- result
	}
	return result
}

func (c *Coordinator) runRefresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
	defer cancel()
	return c.refresh(ctx)
}

func (c *Coordinator) scheduleRedirectLocked() {
	if c.nav == nil || c.redirectPending {
		return
	}
	c.redirectPending = true
	c.log.Info(context.Background(), "redirecting to login", "delay", c.redirectDelay)
	c.schedule(c.redirectDelay, func() {
		c.mu.Lock()
		c.redirectPending = false
		c.mu.Unlock()
		c.nav.Navigate(context.Background(), router.Login)
	})
}

// State returns the current refresh state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns how many calls are waiting on the refresh in flight.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// IsAuthError reports whether err ended a session: a failed refresh or a
// replay rejected again.
func IsAuthError(err error) bool {
	var re *RefreshError
	return errors.Is(err, ErrAuthRequired) || errors.As(err, &re)
}
