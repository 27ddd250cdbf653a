package domain

// SavedSearch is a client-defined search document. Apart from savedSearchId
// and createdAt its shape is owned by the client and stored as sent.
type SavedSearch map[string]any

// Keys managed by the saved-search store.
const (
	SavedSearchIDKey = "savedSearchId"
	CreatedAtKey     = "createdAt"
)

// ID returns the savedSearchId field, or "" when absent or not a string.
func (s SavedSearch) ID() string {
	id, _ := s[SavedSearchIDKey].(string)
	return id
}

// Merge copies every field of patch into s.
func (s SavedSearch) Merge(patch SavedSearch) {
	for k, v := range patch {
		s[k] = v
	}
}

// Clone returns a shallow copy.
func (s SavedSearch) Clone() SavedSearch {
	c := make(SavedSearch, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}
