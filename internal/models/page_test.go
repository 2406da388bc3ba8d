package models

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_Values(t *testing.T) {
	v := PageRequest{Page: 2, Size: 50, SortBy: "createdAt", SortDir: SortDesc}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "50", v.Get("size"))
	assert.Equal(t, "createdAt", v.Get("sortBy"))
	assert.Equal(t, "desc", v.Get("sortDir"))

	v = PageRequest{}.Values()
	assert.Equal(t, "0", v.Get("page"))
	assert.False(t, v.Has("size"))
	assert.False(t, v.Has("sortBy"))
}

func TestParsePageRequest_Clamps(t *testing.T) {
	tests := []struct {
		name string
		in   url.Values
		want PageRequest
	}{
		{name: "defaults", in: url.Values{}, want: PageRequest{Page: 0, Size: DefaultPageSize, SortDir: SortDesc}},
		{name: "negative page", in: url.Values{"page": {"-3"}, "size": {"5"}}, want: PageRequest{Page: 0, Size: 5, SortDir: SortDesc}},
		{name: "oversized", in: url.Values{"size": {"1000"}, "sortDir": {"asc"}}, want: PageRequest{Size: MaxPageSize, SortDir: SortAsc}},
		{name: "sort", in: url.Values{"page": {"1"}, "sortBy": {"email"}}, want: PageRequest{Page: 1, Size: DefaultPageSize, SortBy: "email", SortDir: SortDesc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePageRequest(tt.in))
		})
	}
}

func TestNewPage_Flags(t *testing.T) {
	p := NewPage([]string{"a", "b"}, PageRequest{Page: 1, Size: 2}, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.First)
	assert.False(t, p.Last)

	last := NewPage([]string{"e"}, PageRequest{Page: 2, Size: 2}, 5)
	assert.True(t, last.Last)

	empty := NewPage[string](nil, PageRequest{Size: 10}, 0)
	assert.NotNil(t, empty.Content)
	assert.True(t, empty.First)
	assert.True(t, empty.Last)
}

func TestPage_JSONShape(t *testing.T) {
	b, err := json.Marshal(NewPage([]int{1}, PageRequest{Size: 10}, 1))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, k := range []string{"content", "pageable", "totalElements", "totalPages", "first", "last"} {
		assert.Contains(t, raw, k)
	}
}

func TestFilters_RoundTripThroughQuery(t *testing.T) {
	from := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	uf := UserFilter{Search: "ann", Role: RoleAdmin, Status: UserBanned}
	assert.Equal(t, uf, ParseUserFilter(uf.Apply(url.Values{})))

	ef := EmailFilter{Folder: FolderInbox, UnreadOnly: true, Search: "invoice"}
	assert.Equal(t, ef, ParseEmailFilter(ef.Apply(url.Values{})))

	af := AuditLogFilter{Action: "user.ban", From: from}
	got := ParseAuditLogFilter(af.Apply(url.Values{}))
	assert.Equal(t, af.Action, got.Action)
	assert.True(t, from.Equal(got.From))
	assert.True(t, got.To.IsZero())
}

func TestParseTime_DateOnly(t *testing.T) {
	got := parseTime("2025-03-04")
	assert.Equal(t, 2025, got.Year())
	assert.True(t, parseTime("garbage").IsZero())
}
