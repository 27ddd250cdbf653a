package domain

import "time"

// DrawnPolygon is a persisted region drawn by a client.
type DrawnPolygon struct {
	ID        string    `json:"drawPolygonId"`
	Polygon   string    `json:"polygon"`
	CreatedAt time.Time `json:"createdAt"`
}
