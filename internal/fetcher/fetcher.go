// Package fetcher holds the incremental result state of a launch search and
// the reducer that drives it. The reducer is pure: it never performs I/O and
// returns the request, if any, that the caller must issue.
package fetcher

import (
	"launchscroll/internal/domain"
	"launchscroll/internal/spacex"
)

// PageSize is the number of records per requested page
const PageSize = spacex.PageSize

// Request is a page fetch the caller must perform. Token identifies it; only
// the response carrying the current token is applied.
type Request struct {
	Token  uint64
	Search string
	Page   int
}

// Query converts the request into an API query
func (r Request) Query() spacex.Query {
	return spacex.Query{Search: r.Search, Page: r.Page}
}

// Offset returns the record offset of the requested page
func (r Request) Offset() int {
	return r.Query().Offset()
}

// State is the query state of one session
type State struct {
	Search      string
	Page        int
	Records     []domain.Launch
	Loading     bool
	HasMore     bool
	ShowDetails bool
	LastError   error

	token   uint64
	pending *Request
	merged  int // pages merged into Records for the current search
}

// New returns the initial state: empty search on page 1 with nothing loaded
func New() State {
	return State{Page: 1, HasMore: true}
}

// Start issues the initial page-1 request
func Start(s State) (State, *Request) {
	return s.issue(1)
}

// Pending returns the in-flight request, or nil
func (s State) Pending() *Request {
	if s.pending == nil {
		return nil
	}
	r := *s.pending
	return &r
}

// EndOfResults reports whether the list is complete and idle
func (s State) EndOfResults() bool {
	return !s.Loading && !s.HasMore
}

// Action is an input to the reducer
type Action interface {
	isAction()
}

// SearchChanged replaces the search text
type SearchChanged struct {
	Text string
}

// PageIncremented asks for the next page, typically after a scroll to bottom
type PageIncremented struct{}

// Reload re-requests page 1 of the current search
type Reload struct{}

// FetchSucceeded delivers the records of the request with Token
type FetchSucceeded struct {
	Token   uint64
	Records []domain.Launch
}

// FetchFailed delivers the error of the request with Token
type FetchFailed struct {
	Token uint64
	Err   error
}

// DetailsToggled flips the detail panel for all records
type DetailsToggled struct{}

func (SearchChanged) isAction()   {}
func (PageIncremented) isAction() {}
func (Reload) isAction()          {}
func (FetchSucceeded) isAction()  {}
func (FetchFailed) isAction()     {}
func (DetailsToggled) isAction()  {}

// Reduce applies a to s. A non-nil request must be issued by the caller; it
// supersedes any request that was pending before.
func Reduce(s State, a Action) (State, *Request) {
	switch a := a.(type) {
	case SearchChanged:
		if a.Text == s.Search {
			return s, nil
		}
		s.Search = a.Text
		s.merged = 0
		return s.issue(1)

	case Reload:
		s.merged = 0
		return s.issue(1)

	case PageIncremented:
		// The in-flight check reads the live state, so repeated scroll
		// events before a response arrives collapse into one request.
		if s.Loading || !s.HasMore {
			return s, nil
		}
		return s.issue(s.merged + 1)

	case FetchSucceeded:
		if !s.current(a.Token) {
			return s, nil
		}
		page := s.pending.Page
		if page == 1 {
			s.Records = append([]domain.Launch(nil), a.Records...)
		} else {
			records := make([]domain.Launch, 0, len(s.Records)+len(a.Records))
			records = append(records, s.Records...)
			s.Records = append(records, a.Records...)
		}
		s.merged = page
		s.Page = page
		s.HasMore = len(a.Records) >= PageSize
		s.LastError = nil
		s.settle()
		return s, nil

	case FetchFailed:
		if !s.current(a.Token) {
			return s, nil
		}
		s.LastError = a.Err
		// Roll back so the next scroll asks for the same page again
		s.Page = s.merged
		if s.Page < 1 {
			s.Page = 1
		}
		s.settle()
		return s, nil

	case DetailsToggled:
		s.ShowDetails = !s.ShowDetails
		return s, nil
	}
	return s, nil
}

func (s State) issue(page int) (State, *Request) {
	s.token++
	s.Page = page
	s.Loading = true
	s.pending = &Request{Token: s.token, Search: s.Search, Page: page}
	return s, s.Pending()
}

func (s State) current(token uint64) bool {
	return s.pending != nil && s.pending.Token == token
}

func (s *State) settle() {
	s.pending = nil
	s.Loading = false
}
