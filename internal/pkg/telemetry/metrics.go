package telemetry

// Span names used by the listing and polygon use cases.
const (
	SpanQueryListings   = "listings.query"
	SpanGetListing      = "listings.get"
	SpanDrawPolygon     = "polygon.draw"
	SpanLoadPolygon     = "polygon.load"
	SpanResolveRegion   = "polygon.resolve_region"
	SpanSavedSearchSave = "saved_search.save"
)

// Span attribute keys.
const (
	AttrRegionID     = "listingmap.region_id"
	AttrPolygonID    = "listingmap.polygon_id"
	AttrListingType  = "listingmap.listing_type"
	AttrResultCount  = "listingmap.result_count"
	AttrCandidates   = "listingmap.candidates"
	AttrRingCount    = "listingmap.ring_count"
	AttrSavedSearch  = "listingmap.saved_search_id"
	AttrSearchAction = "listingmap.saved_search_action"
)
