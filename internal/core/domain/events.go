package domain

import "time"

// Saved-search change actions carried by SavedSearchEvent.
const (
	SavedSearchCreated = "created"
	SavedSearchUpdated = "updated"
	SavedSearchDeleted = "deleted"
)

// SavedSearchEvent is broadcast whenever the saved-search list changes.
type SavedSearchEvent struct {
	Action        string      `json:"action"`
	SavedSearchID string      `json:"savedSearchId"`
	Search        SavedSearch `json:"search,omitempty"`
	Time          time.Time   `json:"time"`
}
