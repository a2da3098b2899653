package input

import (
	"launchscroll/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// TotalItems returns the number of loaded launches
func (c *ModelContext) TotalItems() int {
	return len(c.State.Launches())
}

// SearchQuery returns the active search text
func (c *ModelContext) SearchQuery() string {
	return c.State.Query.Search
}
