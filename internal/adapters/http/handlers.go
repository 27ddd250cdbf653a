package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// DrawPolygonHandler validates and stores a client-drawn polygon.
// Body: {"polygon": "lat,lng|lat,lng|...[:lat,lng|...]"}.
func DrawPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Polygon any `json:"polygon"`
		}
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return errBadRequest(c, msgPolygonNotString)
		}
		raw, ok := req.Polygon.(string)
		if !ok || raw == "" {
			return errBadRequest(c, msgPolygonNotString)
		}

		p, err := deps.Polygons.Draw(c.UserContext(), raw)
		if errors.Is(err, domain.ErrInvalidPolygon) {
			LoggerFromCtx(c.UserContext()).Debug("polygon rejected", "error", err)
			return errBadRequest(c, msgInvalidPolygon)
		}
		if err != nil {
			return errInternal(c, err)
		}

		return c.JSON(fiber.Map{"drawPolygonId": p.ID})
	}
}

// GetPolygonHandler returns a stored polygon by id.
func GetPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Polygons.Get(c.UserContext(), c.Params("id"))
		if errors.Is(err, domain.ErrPolygonNotFound) {
			return errNotFound(c, msgPolygonNotFound)
		}
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(p)
	}
}

// QueryListingsHandler runs the listing filter pipeline over the dataset.
func QueryListingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q domain.ListingQuery
		if body := c.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &q); err != nil {
				return errBadRequest(c, msgInvalidBody)
			}
		}

		res, err := deps.Listings.Query(c.UserContext(), q)
		if errors.Is(err, domain.ErrInvalidRegion) {
			return errBadRequest(c, msgInvalidRegion)
		}
		if err != nil {
			return errInternal(c, err)
		}

		SetPageHeaders(c, res.Pagination)
		return c.JSON(res)
	}
}

// LegacyGetListingHandler serves GET /v1/listings?listing_id=... and answers
// 200 with an empty body when nothing matches.
func LegacyGetListingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l, err := deps.Listings.GetByID(c.UserContext(), c.Query("listing_id"))
		if errors.Is(err, domain.ErrListingNotFound) {
			c.Status(fiber.StatusOK)
			return nil
		}
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(l)
	}
}

// GetListingHandler returns one listing or 404.
func GetListingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l, err := deps.Listings.GetByID(c.UserContext(), c.Params("id"))
		if errors.Is(err, domain.ErrListingNotFound) {
			return errNotFound(c, msgListingNotFound)
		}
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(l)
	}
}

// decodeSavedSearch reads a JSON object body; an empty body is an empty search.
func decodeSavedSearch(c *fiber.Ctx) (domain.SavedSearch, error) {
	s := domain.SavedSearch{}
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, err
		}
	}
	if s == nil {
		s = domain.SavedSearch{}
	}
	return s, nil
}

// CreateSavedSearchHandler appends a saved search and returns it.
func CreateSavedSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := decodeSavedSearch(c)
		if err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		created, err := deps.SavedSearches.Create(c.UserContext(), body)
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(created)
	}
}

// UpdateSavedSearchHandler merges the body into the search it names.
func UpdateSavedSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch, err := decodeSavedSearch(c)
		if err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		updated, err := deps.SavedSearches.Update(c.UserContext(), patch)
		if errors.Is(err, domain.ErrSavedSearchNotFound) {
			return errNotFound(c, msgSearchNotFound)
		}
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(fiber.Map{"savedSearch": updated})
	}
}

// ListSavedSearchesHandler returns every saved search.
func ListSavedSearchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		searches, err := deps.SavedSearches.List(c.UserContext())
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(searches)
	}
}

// DeleteSavedSearchHandler removes the search named by savedSearchId in the
// body, or in the query string when the body has none.
func DeleteSavedSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := decodeSavedSearch(c)
		if err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		id := body.ID()
		if _, sent := body[domain.SavedSearchIDKey]; !sent {
			id = c.Query(domain.SavedSearchIDKey)
		}

		if err := deps.SavedSearches.Delete(c.UserContext(), id); err != nil {
			return errInternal(c, err)
		}
		return c.JSON(true)
	}
}
