package domain

import "errors"

var (
	// ErrInvalidPolygon is returned when a drawn polygon fails validation.
	ErrInvalidPolygon = errors.New("invalid polygon format")

	// ErrPolygonNotFound is returned by polygon stores for any id they cannot resolve.
	ErrPolygonNotFound = errors.New("polygon not found")

	// ErrInvalidRegion is returned when a listings query references an unknown region.
	ErrInvalidRegion = errors.New("invalid polygon region id")

	ErrListingNotFound     = errors.New("listing not found")
	ErrSavedSearchNotFound = errors.New("saved search not found")
)
