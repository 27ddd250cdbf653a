package http

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	listingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Listing",
		Fields: graphql.Fields{
			"listingId":     &graphql.Field{Type: graphql.String},
			"listingStatus": &graphql.Field{Type: graphql.String},
			"location":      &graphql.Field{Type: locationType},
			"salePrice":     &graphql.Field{Type: graphql.Float},
			"beds":          &graphql.Field{Type: graphql.Float},
			"baths":         &graphql.Field{Type: graphql.Float},
			"document": &graphql.Field{
				Type:        graphql.String,
				Description: "The full listing record as JSON",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					l, ok := p.Source.(domain.Listing)
					if !ok {
						return nil, nil
					}
					data, err := json.Marshal(l)
					return string(data), err
				},
			},
		},
	})

	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"page":  &graphql.Field{Type: graphql.Int},
			"size":  &graphql.Field{Type: graphql.Int},
			"total": &graphql.Field{Type: graphql.Int},
		},
	})

	listingResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ListingResult",
		Fields: graphql.Fields{
			"polygon":    &graphql.Field{Type: graphql.String},
			"content":    &graphql.Field{Type: graphql.NewList(listingType)},
			"pagination": &graphql.Field{Type: pageInfoType},
		},
	})

	polygonType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DrawnPolygon",
		Fields: graphql.Fields{
			"drawPolygonId": &graphql.Field{Type: graphql.String},
			"polygon":       &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if poly, ok := p.Source.(*domain.DrawnPolygon); ok && !poly.CreatedAt.IsZero() {
						return poly.CreatedAt.Format(time.RFC3339Nano), nil
					}
					return nil, nil
				},
			},
		},
	})

	savedSearchType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SavedSearch",
		Fields: graphql.Fields{
			"savedSearchId": &graphql.Field{Type: graphql.String},
			"createdAt":     &graphql.Field{Type: graphql.String},
			"document": &graphql.Field{
				Type:        graphql.String,
				Description: "The full saved search as JSON",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					data, err := json.Marshal(p.Source)
					return string(data), err
				},
			},
		},
	})

	boundsInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "MapBoundsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"west":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"east":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"south": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"north": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"listings": &graphql.Field{
				Type:        listingResultType,
				Description: "Filter listings by viewport, zoom, region and attributes",
				Args: graphql.FieldConfigArgument{
					"mapBounds":   &graphql.ArgumentConfig{Type: boundsInput},
					"mapZoom":     &graphql.ArgumentConfig{Type: graphql.Float},
					"listingType": &graphql.ArgumentConfig{Type: graphql.String},
					"regionId":    &graphql.ArgumentConfig{Type: graphql.String},
					"priceMin":    &graphql.ArgumentConfig{Type: graphql.Float},
					"priceMax":    &graphql.ArgumentConfig{Type: graphql.Float},
					"bedsMin":     &graphql.ArgumentConfig{Type: graphql.Float},
					"bathsMin":    &graphql.ArgumentConfig{Type: graphql.Float},
					"page":        &graphql.ArgumentConfig{Type: graphql.Int},
					"size":        &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Listings.Query(p.Context, listingQueryFromArgs(p.Args))
				},
			},
			"listing": &graphql.Field{
				Type:        listingType,
				Description: "Get a listing by listingId",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					l, err := deps.Listings.GetByID(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return *l, nil
				},
			},
			"polygon": &graphql.Field{
				Type:        polygonType,
				Description: "Get a drawn polygon by id",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Polygons.Get(p.Context, p.Args["id"].(string))
				},
			},
			"savedSearches": &graphql.Field{
				Type:        graphql.NewList(savedSearchType),
				Description: "List saved searches",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					searches, err := deps.SavedSearches.List(p.Context)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(searches))
					for i, s := range searches {
						out[i] = s
					}
					return out, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"drawPolygon": &graphql.Field{
				Type:        polygonType,
				Description: "Validate and store a polygon in lat,lng|lat,lng|... form",
				Args: graphql.FieldConfigArgument{
					"polygon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Polygons.Draw(p.Context, p.Args["polygon"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// listingQueryFromArgs maps flat GraphQL arguments onto a ListingQuery.
func listingQueryFromArgs(args map[string]interface{}) domain.ListingQuery {
	num := func(key string) domain.Number {
		switch v := args[key].(type) {
		case float64:
			return domain.NewNumber(v)
		case int:
			return domain.NewNumber(float64(v))
		}
		return domain.Number{}
	}

	q := domain.ListingQuery{
		MapZoom: num("mapZoom"),
		Page:    num("page"),
		Size:    num("size"),
	}
	q.ListingType, _ = args["listingType"].(string)

	if b, ok := args["mapBounds"].(map[string]interface{}); ok {
		edge := func(k string) domain.Number {
			v, _ := b[k].(float64)
			return domain.NewNumber(v)
		}
		q.MapBounds = &domain.MapBounds{West: edge("west"), East: edge("east"), South: edge("south"), North: edge("north")}
	}
	if id, ok := args["regionId"].(string); ok {
		q.RegionSelection = &domain.RegionSelection{RegionID: id}
	}

	q.PropertyFilter = &domain.PropertyFilter{
		Price: &domain.PriceRange{Min: num("priceMin"), Max: num("priceMax")},
		Beds:  &domain.MinOnly{Min: num("bedsMin")},
		Baths: &domain.MinOnly{Min: num("bathsMin")},
	}
	return q
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
