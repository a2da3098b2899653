package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"launchscroll/internal/domain"
	"launchscroll/internal/fetcher"
	"launchscroll/internal/spacex"
)

// AppState contains all the application state
type AppState struct {
	// Query holds the search, accumulated records and fetch bookkeeping.
	// It is only changed through Dispatch and Start.
	Query fetcher.State

	// UI state
	StatusMessage string
	InPagerMode   bool
}

// NewAppState creates a new application state for the given initial search
func NewAppState(search string, showDetails bool) *AppState {
	q := fetcher.New()
	q.Search = search
	q.ShowDetails = showDetails
	return &AppState{Query: q}
}

// Start issues the first page-1 request
func (s *AppState) Start() *fetcher.Request {
	var req *fetcher.Request
	s.Query, req = fetcher.Start(s.Query)
	return req
}

// Dispatch applies an action and returns the request to issue, if any
func (s *AppState) Dispatch(action fetcher.Action) *fetcher.Request {
	var req *fetcher.Request
	s.Query, req = fetcher.Reduce(s.Query, action)
	return req
}

// IsCurrent reports whether token belongs to the in-flight request
func (s *AppState) IsCurrent(token uint64) bool {
	p := s.Query.Pending()
	return p != nil && p.Token == token
}

// Launches returns the accumulated records
func (s *AppState) Launches() []domain.Launch {
	return s.Query.Records
}

// LaunchAt returns the record at index
func (s *AppState) LaunchAt(index int) (domain.Launch, bool) {
	if index < 0 || index >= len(s.Query.Records) {
		return domain.Launch{}, false
	}
	return s.Query.Records[index], true
}

// ErrorMessage describes the last fetch failure for display
func (s *AppState) ErrorMessage() string {
	err := s.Query.LastError
	if err == nil {
		return ""
	}

	var apiErr *spacex.APIError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Failed to load launches: server returned %d", apiErr.StatusCode)
	case errors.Is(err, spacex.ErrUnexpectedShape):
		return "Failed to load launches: unexpected response"
	case errors.Is(err, circuitbreaker.ErrOpen):
		return "Launch API unavailable, try again shortly"
	case errors.Is(err, context.DeadlineExceeded):
		return "Failed to load launches: request timed out"
	}

	var netErr *spacex.NetworkError
	if errors.As(err, &netErr) && netErr.Err != nil {
		err = netErr.Err
	}
	return fmt.Sprintf("Failed to load launches: %v", err)
}
