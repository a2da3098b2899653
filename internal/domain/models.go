package domain

import "time"

// Outcome is the tri-state result of a launch
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeUpcoming
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUpcoming:
		return "upcoming"
	default:
		return "failed"
	}
}

// Launch represents a single launch record returned by the API
type Launch struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FlightNumber int       `json:"flight_number"`
	Success      *bool     `json:"success"`
	Upcoming     bool      `json:"upcoming"`
	DateUTC      time.Time `json:"date_utc"`
	DateLocal    time.Time `json:"date_local"`
	Details      string    `json:"details"`
	Links        Links     `json:"links"`
}

// Links holds the external references of a launch
type Links struct {
	Article   string `json:"article"`
	Webcast   string `json:"webcast"`
	Wikipedia string `json:"wikipedia"`
	Patch     Patch  `json:"patch"`
}

// Patch holds the mission patch image links
type Patch struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// Outcome derives the launch outcome from the success and upcoming flags.
// A successful launch wins over the upcoming flag.
func (l Launch) Outcome() Outcome {
	if l.Success != nil && *l.Success {
		return OutcomeSuccess
	}
	if l.Upcoming {
		return OutcomeUpcoming
	}
	return OutcomeFailed
}

// When returns the local launch time, falling back to UTC
func (l Launch) When() time.Time {
	if !l.DateLocal.IsZero() {
		return l.DateLocal
	}
	return l.DateUTC
}
