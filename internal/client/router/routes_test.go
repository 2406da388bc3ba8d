package router

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatus() int { return int(e) }

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected(Dashboard))
	for _, s := range Sections {
		assert.True(t, IsProtected(s), s)
	}
	assert.False(t, IsProtected(Login))
	assert.False(t, IsProtected(AuthSuccess))
	assert.False(t, IsProtected(Route("/dashboardx")))
	assert.False(t, IsProtected(NotFound))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"dashboard/users", Users},
		{"/dashboard/users/", Users},
		{" /login ", Login},
		{"/dashboard", Dashboard},
		{"/nowhere", NotFound},
		{"", NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Route
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"plain", errors.New("x"), "", false},
		{"401", statusErr(401), Unauthorized, true},
		{"wrapped 404", fmt.Errorf("get: %w", statusErr(404)), NotFound, true},
		{"500", statusErr(500), ServerError, true},
		{"502", statusErr(502), ServerError, true},
		{"503", statusErr(503), ServiceUnavailable, true},
		{"400", statusErr(400), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ForError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNavigatorFunc(t *testing.T) {
	var got Route
	var n Navigator = NavigatorFunc(func(_ context.Context, r Route) { got = r })
	n.Navigate(context.Background(), Login)
	assert.Equal(t, Login, got)
	assert.Equal(t, "Audit logs", AuditLogs.Title())
}
