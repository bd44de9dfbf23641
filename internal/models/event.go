package models

import "time"

// DateLayout is the canonical form every Event date is normalized to
// before persistence.
const DateLayout = "2006-01-02"

// Event is an appointment record. Events are partitioned by UserID and the
// whole partition is stored as one value under events_<userId>.
type Event struct {
	// ID is unique and creation-time-ordered. Immutable.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Date is always in canonical YYYY-MM-DD form.
	Date string `json:"date"`

	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	// UserID is the owning partition key. Immutable.
	UserID string `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventDraft carries the caller-supplied fields for creating or updating an
// Event. Date may arrive in any calendar representation; stores normalize it
// with NormalizeDate.
type EventDraft struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
}

// NormalizeDate renders t in the canonical YYYY-MM-DD form.
func NormalizeDate(t time.Time) string {
	return t.Format(DateLayout)
}
