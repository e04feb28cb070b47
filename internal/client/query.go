package client

import (
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Result types understood by the search endpoint.
const (
	TypeDataverse = "dataverse"
	TypeDataset   = "dataset"
	TypeFile      = "file"
)

// SearchQuery holds the parameters accepted by the Dataverse search
// endpoint. Zero values mean "not set" and are omitted from the wire
// request. Treat a query as frozen once it has been handed to Search;
// clone it instead of mutating it between calls.
//
// See https://guides.dataverse.org/en/latest/api/search.html
type SearchQuery struct {
	// Query is the search term or terms. "title:data" searches only the
	// title field and "*" is a wildcard; an empty Query is sent as "*".
	Query string `json:"q"`

	// Types narrows results to dataverses, datasets and/or files.
	Types []string `json:"type"`

	// Subtree is the identifier of the collection to search under; the
	// collection and all its children are searched.
	Subtree string `json:"subtree"`

	// Sort is the sort field, "name" or "date".
	Sort string `json:"sort"`

	// Order is the sort order, "asc" or "desc".
	Order string `json:"order"`

	// PerPage is the number of results per request, between 1 and 1000.
	PerPage int `json:"per_page"`

	// Start is a cursor for paging through results.
	Start int `json:"start"`

	// ShowRelevance includes details of which fields matched the query.
	ShowRelevance bool `json:"show_relevance"`

	// ShowFacets includes facets that can be narrowed with FilterQueries.
	ShowFacets bool `json:"show_facets"`

	// FilterQueries holds fq expressions in the remote search engine's
	// syntax, each one a further constraint on the result set.
	FilterQueries []string `json:"fq"`

	// ShowEntityIDs includes database IDs of the results.
	ShowEntityIDs bool `json:"show_entity_ids"`

	// GeoPoint is a latitude/longitude pair such as "42.3,-71.1".
	// GeoRadius is a radial distance in kilometers from GeoPoint. The
	// search API expects the two together but the pairing is not
	// enforced here.
	GeoPoint  string `json:"geo_point"`
	GeoRadius string `json:"geo_radius"`

	// MetadataFields requests extra metadata fields for each dataset.
	MetadataFields []string `json:"metadata_fields"`
}

// Validate checks enum membership and numeric bounds so that malformed
// input is rejected before it costs a network round trip. Fields left
// at their zero value are not checked.
func (q SearchQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Types, validation.Each(
			validation.In(TypeDataverse, TypeDataset, TypeFile).
				Error("must be one of: dataverse, dataset, file"))),
		validation.Field(&q.Sort,
			validation.In("name", "date").Error("must be one of: name, date")),
		validation.Field(&q.Order,
			validation.In("asc", "desc").Error("must be one of: asc, desc")),
		validation.Field(&q.PerPage, validation.Min(1), validation.Max(1000)),
	)
}

// Values validates the query and maps it to URL query parameters.
// Unset optional fields are omitted entirely, list fields repeat their
// key once per element in input order, and boolean flags appear only
// when true (the search API treats absence as false). "q" is always
// emitted. The mapping is deterministic and does not modify q.
func (q SearchQuery) Values() (url.Values, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}

	text := q.Query
	if text == "" {
		text = "*"
	}
	params.Set("q", text)

	for _, t := range q.Types {
		params.Add("type", t)
	}
	if q.Subtree != "" {
		params.Set("subtree", q.Subtree)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Start > 0 {
		params.Set("start", strconv.Itoa(q.Start))
	}
	if q.ShowRelevance {
		params.Set("show_relevance", "true")
	}
	if q.ShowFacets {
		params.Set("show_facets", "true")
	}
	for _, fq := range q.FilterQueries {
		params.Add("fq", fq)
	}
	if q.ShowEntityIDs {
		params.Set("show_entity_ids", "true")
	}
	if q.GeoPoint != "" {
		params.Set("geo_point", q.GeoPoint)
	}
	if q.GeoRadius != "" {
		params.Set("geo_radius", q.GeoRadius)
	}
	for _, f := range q.MetadataFields {
		params.Add("metadata_fields", f)
	}

	return params, nil
}
