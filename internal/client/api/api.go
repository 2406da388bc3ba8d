// Package api maps each admin feature's operations onto REST endpoints.
// Functions only build the path, query and body; errors come back from the
// transport unchanged.
package api

import (
	"net/url"

	"github.com/dmitrijs2005/adminconsole/internal/client/transport"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// API groups the feature modules over one transport.
type API struct {
	Auth      *Auth
	Users     *Users
	Posts     *Posts
	AuditLogs *AuditLogs
	Analytics *Analytics
	Emails    *Emails
	Agent     *Agent
}

func New(d transport.Doer) *API {
	return &API{
		Auth:      &Auth{d: d},
		Users:     &Users{d: d},
		Posts:     &Posts{d: d},
		AuditLogs: &AuditLogs{d: d},
		Analytics: &Analytics{d: d},
		Emails:    &Emails{d: d},
		Agent:     &Agent{d: d},
	}
}

type filter interface {
	Apply(url.Values) url.Values
}

func listQuery(p models.PageRequest, f filter) url.Values {
	return f.Apply(p.Values())
}
