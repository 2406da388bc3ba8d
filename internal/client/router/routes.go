// Package router holds the console's route table and the Navigator used to
// move between screens (login, session bootstrap, dashboard sections, error pages).
package router

import (
	"context"
	"strings"
)

type Route string

const (
	Login       Route = "/login"
	AuthSuccess Route = "/auth/success"
	Dashboard   Route = "/dashboard"

	Users     Route = "/dashboard/users"
	Posts     Route = "/dashboard/posts"
	AuditLogs Route = "/dashboard/audit-logs"
	Emails    Route = "/dashboard/emails"
	AIAgent   Route = "/dashboard/ai-agent"
	Analytics Route = "/dashboard/analytics"

	Unauthorized       Route = "/401"
	NotFound           Route = "/404"
	ServerError        Route = "/500"
	ServiceUnavailable Route = "/503"
)

// Sections lists the dashboard sections in menu order.
var Sections = []Route{Users, Posts, AuditLogs, Emails, AIAgent, Analytics}

// Navigator moves the console to a route.
type Navigator interface {
	Navigate(ctx context.Context, r Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, r Route)

func (f NavigatorFunc) Navigate(ctx context.Context, r Route) { f(ctx, r) }

// IsProtected reports whether r requires an authenticated session.
func IsProtected(r Route) bool {
	return r == Dashboard || strings.HasPrefix(string(r), string(Dashboard)+"/")
}

// Known reports whether r is part of the route table.
func Known(r Route) bool {
	switch r {
	case Login, AuthSuccess, Dashboard, Unauthorized, NotFound, ServerError, ServiceUnavailable:
		return true
	}
	for _, s := range Sections {
		if r == s {
			return true
		}
	}
	return false
}

// Resolve maps a user-entered path to a known route, falling back to NotFound.
func Resolve(path string) Route {
	p := "/" + strings.Trim(strings.TrimSpace(path), "/")
	if r := Route(p); Known(r) {
		return r
	}
	return NotFound
}

// Title is the human label for a route.
func (r Route) Title() string {
	switch r {
	case Login:
		return "Sign in"
	case AuthSuccess:
		return "Signing in"
	case Dashboard:
		return "Overview"
	case Users:
		return "Users"
	case Posts:
		return "Posts"
	case AuditLogs:
		return "Audit logs"
	case Emails:
		return "Email"
	case AIAgent:
		return "AI agent"
	case Analytics:
		return "Analytics"
	case Unauthorized:
		return "Unauthorized"
	case NotFound:
		return "Not found"
	case ServerError:
		return "Server error"
	case ServiceUnavailable:
		return "Service unavailable"
	}
	return string(r)
}
