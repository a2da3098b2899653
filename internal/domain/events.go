package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryIssued    EventType = "QueryIssued"
	EventPageLoaded     EventType = "PageLoaded"
	EventFetchFailed    EventType = "FetchFailed"
	EventDetailsToggled EventType = "DetailsToggled"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryIssuedEvent is emitted when a page request is sent to the API
type QueryIssuedEvent struct {
	Token  uint64
	Search string
	Page   int
}

func (e QueryIssuedEvent) Type() EventType { return EventQueryIssued }

// PageLoadedEvent is emitted when a page response has been merged
type PageLoadedEvent struct {
	Token    uint64
	Search   string
	Page     int
	Count    int
	Total    int // accumulated records after the merge
	Matching int // launches matching the search on the server, 0 if unknown
	HasMore  bool
	Duration time.Duration
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// FetchFailedEvent is emitted when a page request fails
type FetchFailedEvent struct {
	Token  uint64
	Search string
	Page   int
	Err    error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// DetailsToggledEvent is emitted when the detail panel visibility changes
type DetailsToggledEvent struct {
	Visible bool
}

func (e DetailsToggledEvent) Type() EventType { return EventDetailsToggled }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
