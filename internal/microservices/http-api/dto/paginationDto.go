package dto

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageParams is the parsed ?page=&page_size= pair
type PageParams struct {
	Page     int
	PageSize int
}

// ParsePageParams reads page and page_size, falling back to defaults on
// missing or out-of-range values.
func ParsePageParams(query url.Values) PageParams {
	p := PageParams{Page: 1, PageSize: DefaultPageSize}

	if v := query.Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Page = parsed
		}
	}
	if v := query.Get("page_size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= MaxPageSize {
			p.PageSize = parsed
		}
	}
	return p
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse is the list envelope: {count, next, previous, results}
type PageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPageResponse builds the envelope; next/previous keep every other query
// parameter of the request URL.
func NewPageResponse[T any](results []T, total int64, p PageParams, requestURL *url.URL) PageResponse[T] {
	if results == nil {
		results = []T{}
	}
	resp := PageResponse[T]{Count: total, Results: results}

	if int64(p.Offset()+len(results)) < total {
		next := pageLink(requestURL, p.Page+1)
		resp.Next = &next
	}
	if p.Page > 1 {
		prev := pageLink(requestURL, p.Page-1)
		resp.Previous = &prev
	}
	return resp
}

func pageLink(u *url.URL, page int) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	link := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return link.String()
}
