package session

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/adminconsole/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/adminconsole/internal/logging"
)

// Jar is an http.CookieJar that mirrors every cookie it receives into a
// cookies.Repository.
type Jar struct {
	repo cookies.Repository
	log  logging.Logger
	now  func() time.Time

	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func NewJar(repo cookies.Repository, log logging.Logger) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Jar{repo: repo, log: log, now: time.Now, inner: inner}, nil
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *Jar) SetCookies(u *url.URL, cs []*http.Cookie) {
	j.mu.RLock()
	j.inner.SetCookies(u, cs)
	j.mu.RUnlock()

	ctx := context.Background()
	o := origin(u)
	for _, c := range cs {
		var err error
		if j.expired(c) {
			err = j.repo.Delete(ctx, o, c.Name)
		} else {
			err = j.repo.Save(ctx, toStored(o, c, j.now()))
		}
		if err != nil {
			j.log.Warn(ctx, "failed to persist cookie", "name", c.Name, "error", err)
		}
	}
}

// Restore loads persisted cookies into memory; expired ones are skipped.
func (j *Jar) Restore(ctx context.Context) error {
	stored, err := j.repo.List(ctx)
	if err != nil {
		return err
	}
	byOrigin := make(map[string][]*http.Cookie)
	for _, c := range stored {
		if !c.Expires.IsZero() && !c.Expires.After(j.now()) {
			continue
		}
		byOrigin[c.Origin] = append(byOrigin[c.Origin], &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	for o, cs := range byOrigin {
		u, err := url.Parse(o)
		if err != nil {
			continue
		}
		j.inner.SetCookies(u, cs)
	}
	return nil
}

// Clear forgets every cookie, in memory and on disk.
func (j *Jar) Clear(ctx context.Context) error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
	return j.repo.Clear(ctx)
}

func (j *Jar) expired(c *http.Cookie) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && c.MaxAge == 0 && !c.Expires.After(j.now())
}

func toStored(origin string, c *http.Cookie, now time.Time) cookies.Cookie {
	expires := c.Expires
	if c.MaxAge > 0 {
		expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	return cookies.Cookie{
		Origin:   origin,
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Expires:  expires,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
	}
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
