// Copyright 2025 David Stotijn
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryConjunctionOrder(t *testing.T) {
	q := ListQuery{
		Search:    "bikes",
		Publisher: "City of Paris",
		Theme:     "Transport",
		Where:     "year > 2020",
		Limit:     10,
		Offset:    0,
	}
	v := q.Values()
	assert.Equal(t, `"bikes" AND year > 2020 AND publisher="City of Paris" AND theme="Transport"`, v.Get("where"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "0", v.Get("offset"))
}

func TestListQuerySearchOnly(t *testing.T) {
	v := ListQuery{Search: "velib", Limit: 5}.Values()
	assert.Equal(t, `"velib"`, v.Get("where"))
}

func TestListQueryFiltersWithoutSearch(t *testing.T) {
	v := ListQuery{Publisher: "INSEE", Theme: "Economy", Limit: 10}.Values()
	assert.Equal(t, `publisher="INSEE" AND theme="Economy"`, v.Get("where"))
}

func TestListQueryNoFilterOmitsWhere(t *testing.T) {
	v := ListQuery{Limit: 10, Offset: 20}.Values()
	_, present := v["where"]
	assert.False(t, present)
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "20", v.Get("offset"))
}

func TestRecordsQueryOmitsAbsentClauses(t *testing.T) {
	v := RecordsQuery{Limit: 10}.Values()
	for _, key := range []string{"select", "where", "group_by", "order_by"} {
		_, present := v[key]
		assert.False(t, present, "unexpected %s parameter", key)
	}
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "0", v.Get("offset"))
}

func TestRecordsQueryAllClauses(t *testing.T) {
	v := RecordsQuery{
		Select:  "name, count(*) as count",
		Where:   `status="open"`,
		GroupBy: "name",
		OrderBy: "count DESC",
		Limit:   100,
		Offset:  50,
	}.Values()
	assert.Equal(t, "name, count(*) as count", v.Get("select"))
	assert.Equal(t, `status="open"`, v.Get("where"))
	assert.Equal(t, "name", v.Get("group_by"))
	assert.Equal(t, "count DESC", v.Get("order_by"))
	assert.Equal(t, "100", v.Get("limit"))
	assert.Equal(t, "50", v.Get("offset"))
}

func TestFacetsQueryRepeatsFacetParameter(t *testing.T) {
	v := FacetsQuery{Facets: []string{"city", "year"}, Where: "population > 1000"}.Values()
	assert.Equal(t, []string{"city", "year"}, v["facet"])
	assert.Equal(t, "population > 1000", v.Get("where"))
}

func TestExportQueryLimitOnlyWhenPositive(t *testing.T) {
	v := ExportQuery{Select: "name"}.Values()
	_, present := v["limit"]
	assert.False(t, present)

	v = ExportQuery{Select: "name", Limit: 500}.Values()
	assert.Equal(t, "500", v.Get("limit"))
}

func TestSearchWhereInsertsQueryVerbatim(t *testing.T) {
	assert.Equal(t, "search(velib)", searchWhere("velib"))
	// The remote search() function owns the syntax; no quoting or escaping
	// happens locally.
	assert.Equal(t, `search(st*tion "exact phrase")`, searchWhere(`st*tion "exact phrase"`))
}

func TestExportURLKeepsQuerySeparator(t *testing.T) {
	c := NewClient("https://example.org", "")
	u := c.ExportURL("bikes", "csv", ExportQuery{})
	assert.Equal(t, "https://example.org/api/explore/v2.1/catalog/datasets/bikes/exports/csv?", u)

	u = c.ExportURL("bikes", "json", ExportQuery{Select: "name", Limit: 100})
	assert.Equal(t, "https://example.org/api/explore/v2.1/catalog/datasets/bikes/exports/json?limit=100&select=name", u)
}
