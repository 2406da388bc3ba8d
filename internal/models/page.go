package models

import (
	"net/url"
	"strconv"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Page is the paginated list envelope returned by list endpoints.
// PageNumber is zero-based.
type Page[T any] struct {
	Content       []T      `json:"content"`
	Pageable      Pageable `json:"pageable"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	First         bool     `json:"first"`
	Last          bool     `json:"last"`
}

type Pageable struct {
	PageNumber int  `json:"pageNumber"`
	PageSize   int  `json:"pageSize"`
	Sort       Sort `json:"sort"`
}

type Sort struct {
	Sorted bool `json:"sorted"`
}

// NewPage assembles a Page from one slice of content and the overall total.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	size := req.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content: content,
		Pageable: Pageable{
			PageNumber: req.Page,
			PageSize:   size,
			Sort:       Sort{Sorted: req.SortBy != ""},
		},
		TotalElements: total,
		TotalPages:    pages,
		First:         req.Page == 0,
		Last:          req.Page >= pages-1,
	}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest carries the common pagination and sort parameters.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDir
}

// Values encodes the request as page/size/sortBy/sortDir query parameters.
// Zero-valued sort fields are omitted.
func (r PageRequest) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(r.Page))
	if r.Size > 0 {
		v.Set("size", strconv.Itoa(r.Size))
	}
	if r.SortBy != "" {
		v.Set("sortBy", r.SortBy)
	}
	if r.SortDir != "" {
		v.Set("sortDir", string(r.SortDir))
	}
	return v
}

// ParsePageRequest reads page/size/sortBy/sortDir from query values,
// clamping the size into [1, MaxPageSize].
func ParsePageRequest(v url.Values) PageRequest {
	r := PageRequest{
		SortBy:  v.Get("sortBy"),
		SortDir: SortDir(v.Get("sortDir")),
	}
	r.Page, _ = strconv.Atoi(v.Get("page"))
	if r.Page < 0 {
		r.Page = 0
	}
	r.Size, _ = strconv.Atoi(v.Get("size"))
	switch {
	case r.Size <= 0:
		r.Size = DefaultPageSize
	case r.Size > MaxPageSize:
		r.Size = MaxPageSize
	}
	if r.SortDir != SortAsc {
		r.SortDir = SortDesc
	}
	return r
}

// Desc reports whether the request sorts descending.
func (r PageRequest) Desc() bool {
	return r.SortDir != SortAsc
}
