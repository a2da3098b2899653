//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"
)

type apiLaunch struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FlightNumber int       `json:"flight_number"`
	Success      *bool     `json:"success"`
	Upcoming     bool      `json:"upcoming"`
	DateUTC      time.Time `json:"date_utc"`
	Details      string    `json:"details"`
	Links        struct {
		Wikipedia string `json:"wikipedia"`
	} `json:"links"`
}

type apiQuery struct {
	Query struct {
		Name *struct {
			Regex   string `json:"$regex"`
			Options string `json:"$options"`
		} `json:"name"`
	} `json:"query"`
	Options struct {
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"options"`
}

// FakeAPI serves the launch query endpoint from an in-memory catalogue
type FakeAPI struct {
	srv      *httptest.Server
	launches []apiLaunch

	mu       sync.Mutex
	requests []apiQuery
	failures int // next requests answered with 500
}

// NewFakeAPI starts a server holding starlinks "Starlink-N" launches followed
// by three Falcon launches
func NewFakeAPI(t *testing.T, starlinks int) *FakeAPI {
	t.Helper()

	ok := true
	var launches []apiLaunch
	add := func(name string) {
		n := len(launches) + 1
		l := apiLaunch{
			ID:           fmt.Sprintf("launch-%03d", n),
			Name:         name,
			FlightNumber: n,
			Success:      &ok,
			DateUTC:      time.Date(2010, 6, 4, 18, 45, 0, 0, time.UTC).AddDate(0, n, 0),
			Details:      name + " mission details",
		}
		l.Links.Wikipedia = "https://en.wikipedia.org/wiki/" + name
		launches = append(launches, l)
	}
	for i := 1; i <= starlinks; i++ {
		add(fmt.Sprintf("Starlink-%d", i))
	}
	add("FalconSat")
	add("Falcon 9 Test Flight")
	add("Falcon Heavy Test Flight")

	api := &FakeAPI{launches: launches}
	api.srv = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.srv.Close)
	return api
}

// URL returns the query endpoint
func (a *FakeAPI) URL() string {
	return a.srv.URL + "/v5/launches/query"
}

// FailNext makes the next n requests fail with a server error
func (a *FakeAPI) FailNext(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = n
}

// Requests returns the queries received so far
func (a *FakeAPI) Requests() []apiQuery {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiQuery(nil), a.requests...)
}

func (a *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var q apiQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	a.requests = append(a.requests, q)
	fail := a.failures > 0
	if fail {
		a.failures--
	}
	a.mu.Unlock()

	if fail {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}

	matched := a.launches
	if q.Query.Name != nil && q.Query.Name.Regex != "" {
		re, err := regexp.Compile("(?i)" + q.Query.Name.Regex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		matched = nil
		for _, l := range a.launches {
			if re.MatchString(l.Name) {
				matched = append(matched, l)
			}
		}
	}

	docs := []apiLaunch{}
	if q.Options.Offset < len(matched) {
		end := min(q.Options.Offset+q.Options.Limit, len(matched))
		docs = matched[q.Options.Offset:end]
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"docs":        docs,
		"totalDocs":   len(matched),
		"limit":       q.Options.Limit,
		"offset":      q.Options.Offset,
		"hasNextPage": q.Options.Offset+len(docs) < len(matched),
	})
}
