package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/client/authrefresh"
	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 30 * time.Second
	apiPrefix      = "/api"
	refreshPath    = "/auth/refresh"
	requestIDKey   = "X-Request-ID"
	maxBodyBytes   = 8 << 20
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	Jar           http.CookieJar
	Logger        logging.Logger
	Navigator     router.Navigator
	RedirectDelay time.Duration
	// HTTPClient replaces the default client; its Jar and Timeout are left as set.
	HTTPClient *http.Client
}

// Client talks to the admin API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
	auth    *authrefresh.Coordinator
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	hc := opts.HTTPClient
	if hc == nil {
		jar := opts.Jar
		if jar == nil {
			jar, err = cookiejar.New(nil)
			if err != nil {
				return nil, err
			}
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Jar: jar, Timeout: timeout}
	}

	c := &Client{
		baseURL: base.String() + apiPrefix,
		http:    hc,
		log:     log,
	}

	refreshTimeout := hc.Timeout
	if refreshTimeout <= 0 {
		refreshTimeout = DefaultTimeout
	}
	authOpts := []authrefresh.Option{
		authrefresh.WithLogger(log),
		authrefresh.WithRefreshTimeout(refreshTimeout),
	}
	if opts.Navigator != nil {
		authOpts = append(authOpts, authrefresh.WithNavigator(opts.Navigator))
	}
	if opts.RedirectDelay > 0 {
		authOpts = append(authOpts, authrefresh.WithRedirectDelay(opts.RedirectDelay))
	}
	c.auth = authrefresh.New(c.refresh, IsUnauthorized, authOpts...)

	return c, nil
}

// BaseURL returns the API root all paths are joined to.
func (c *Client) BaseURL() string { return c.baseURL }

// Jar returns the cookie jar holding the session cookies.
func (c *Client) Jar() http.CookieJar { return c.http.Jar }

// Coordinator returns the refresh coordinator owned by this client.
func (c *Client) Coordinator() *authrefresh.Coordinator { return c.auth }

// Do sends req and decodes the reply payload into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var err error
	if req.SkipAuthRecovery {
		err = c.send(ctx, req, out)
	} else {
		err = c.auth.ExecuteWithAuthRecovery(ctx, &call{client: c, req: req, out: out})
	}
	return c.mapError(ctx, req, err)
}

func (c *Client) refresh(ctx context.Context) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: refreshPath, SkipAuthRecovery: true}, nil)
}

func (c *Client) send(ctx context.Context, req Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}
	reqID := httpReq.Header.Get(requestIDKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Debug(ctx, "request failed", "request_id", reqID, "method", req.Method, "path", req.Path, "error", err)
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	c.log.Debug(ctx, "request completed",
		"request_id", reqID,
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body), Body: body}
	}
	return decode(body, out)
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDKey, uuid.NewString())
	return httpReq, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	kind := ErrNetwork
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		kind = ErrTimeout
	}
	return &RequestError{Kind: kind, Cause: err}
}

// mapError normalizes what comes back from send or the coordinator.
func (c *Client) mapError(ctx context.Context, req Request, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || (ctx.Err() != nil && errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	if authrefresh.IsAuthError(err) {
		return err
	}
	var se *StatusError
	if errors.As(err, &se) {
		if isAnalyzePath(req.Path) {
			return se
		}
		return &RequestError{Kind: kindForStatus(se.Status), Status: se.Status, Message: se.Message, Cause: se}
	}
	return err
}

func isAnalyzePath(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg == "analyze" {
			return true
		}
	}
	return false
}

// call adapts one request to authrefresh.Call.
type call struct {
	client  *Client
	req     Request
	out     any
	retried bool
}

func (c *call) Send(ctx context.Context) error { return c.client.send(ctx, c.req, c.out) }
func (c *call) Retried() bool                  { return c.retried }
func (c *call) MarkRetried()                   { c.retried = true }
