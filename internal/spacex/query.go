package spacex

import (
	"errors"
	"fmt"

	"launchscroll/internal/domain"
)

// PageSize is the number of launches requested per page
const PageSize = 10

// ErrUnexpectedShape is wrapped when the response body is not a query result
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Query identifies one page of a name search. An empty Search matches all
// launches.
type Query struct {
	Search string
	Page   int // 1-based
}

// Offset returns the number of records skipped before this page
func (q Query) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * PageSize
}

func (q Query) key() string {
	return fmt.Sprintf("%d\x00%s", q.Page, q.Search)
}

// Page is one page of query results
type Page struct {
	Docs      []domain.Launch
	TotalDocs int // matching launches across all pages, when the server reports it
}

type nameFilter struct {
	Regex   string `json:"$regex"`
	Options string `json:"$options"`
}

type queryFilter struct {
	Name *nameFilter `json:"name,omitempty"`
}

type queryOptions struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// requestBody is the POST body of the query endpoint
type requestBody struct {
	Query   queryFilter  `json:"query"`
	Options queryOptions `json:"options"`
}

// responseBody mirrors the paginated result document. Docs is a pointer so a
// missing field can be told apart from an empty page.
type responseBody struct {
	Docs      *[]domain.Launch `json:"docs"`
	TotalDocs int              `json:"totalDocs"`
}

func newRequestBody(q Query) requestBody {
	body := requestBody{
		Options: queryOptions{Offset: q.Offset(), Limit: PageSize},
	}
	if q.Search != "" {
		body.Query.Name = &nameFilter{Regex: q.Search, Options: "i"}
	}
	return body
}

// APIError reports a non-2xx response from the query endpoint
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("launch API returned status: %d", e.StatusCode)
	}
	return fmt.Sprintf("launch API returned status: %d: %s", e.StatusCode, e.Body)
}

// NetworkError is returned for every failed query: transport failures,
// non-2xx statuses, an open circuit and malformed bodies alike.
type NetworkError struct {
	Op    string
	Query Query
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s (search=%q page=%d): %v", e.Op, e.Query.Search, e.Query.Page, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
