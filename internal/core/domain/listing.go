package domain

import "encoding/json"

// Listing is a single property record from the static dataset. Only the
// fields the query pipeline needs are decoded; the original JSON document is
// kept so responses carry every field the dataset provides.
type Listing struct {
	ListingID     string   `json:"listingId"`
	ListingStatus string   `json:"listingStatus"`
	Location      Location `json:"location"`
	SalePrice     float64  `json:"salePrice"`
	Beds          float64  `json:"beds"`
	Baths         float64  `json:"baths"`

	raw json.RawMessage
}

type listingFields Listing

// UnmarshalJSON decodes the known fields and retains the raw document.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var f listingFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*l = Listing(f)
	l.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original document when the listing was decoded
// from the dataset, and the known fields otherwise.
func (l Listing) MarshalJSON() ([]byte, error) {
	if len(l.raw) > 0 {
		return l.raw, nil
	}
	return json.Marshal(listingFields(l))
}

// PriceRange bounds salePrice on both sides.
type PriceRange struct {
	Min Number `json:"min"`
	Max Number `json:"max"`
}

// MinOnly is a lower bound filter (beds, baths).
type MinOnly struct {
	Min Number `json:"min"`
}

// PropertyFilter groups the attribute filters of a listings query.
type PropertyFilter struct {
	Price *PriceRange `json:"price,omitempty"`
	Beds  *MinOnly    `json:"beds,omitempty"`
	Baths *MinOnly    `json:"baths,omitempty"`
}

// RegionSelection references a previously drawn polygon.
type RegionSelection struct {
	RegionID string `json:"regionId"`
}

// ListingQuery is the body of POST /v1/listings.
type ListingQuery struct {
	MapBounds       *MapBounds       `json:"mapBounds,omitempty"`
	MapZoom         Number           `json:"mapZoom"`
	ListingType     string           `json:"listingType,omitempty"`
	PropertyFilter  *PropertyFilter  `json:"propertyFilter,omitempty"`
	RegionSelection *RegionSelection `json:"regionSelection,omitempty"`
	Page            Number           `json:"page"`
	Size            Number           `json:"size"`
}

// RegionID returns the selected region id, or "" when none was sent.
func (q ListingQuery) RegionID() string {
	if q.RegionSelection == nil {
		return ""
	}
	return q.RegionSelection.RegionID
}

// Default page window of a listings query.
const (
	DefaultPage = 1
	DefaultSize = 60
)

// PageInfo describes the requested page. The content of a ListingResult is
// not sliced to it; Start and End are the offsets the page would cover.
type PageInfo struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewPageInfo computes the offsets of page (1-based) of the given size.
func NewPageInfo(page, size, total int) PageInfo {
	start := (page - 1) * size
	return PageInfo{Page: page, Size: size, Total: total, Start: start, End: start + size}
}

// ListingResult is the outcome of a listings query.
type ListingResult struct {
	Polygon    *string   `json:"polygon"`
	Content    []Listing `json:"content"`
	Pagination PageInfo  `json:"pagination"`
}
