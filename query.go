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
	"net/url"
	"strconv"
	"strings"
)

// Query builders translate tool parameters into Explore API query parameters.
// ODSQL clause contents are passed through verbatim and never parsed or
// validated locally.

// ListQuery selects datasets from the catalog. Where, Publisher and Theme are
// AND-joined into a single filter expression; a free-text Search term is
// wrapped in double quotes and prepended. Conjunction order is fixed:
// search, where, publisher, theme.
type ListQuery struct {
	Search    string
	Publisher string
	Theme     string
	Where     string
	Limit     int
	Offset    int
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))

	var clauses []string
	if q.Where != "" {
		clauses = append(clauses, q.Where)
	}
	if q.Publisher != "" {
		clauses = append(clauses, `publisher="`+q.Publisher+`"`)
	}
	if q.Theme != "" {
		clauses = append(clauses, `theme="`+q.Theme+`"`)
	}
	where := strings.Join(clauses, " AND ")

	if q.Search != "" {
		quoted := `"` + q.Search + `"`
		if where != "" {
			where = quoted + " AND " + where
		} else {
			where = quoted
		}
	}
	if where != "" {
		v.Set("where", where)
	}
	return v
}

// RecordsQuery shapes a records request. Absent ODSQL clauses are omitted,
// never defaulted to wildcards.
type RecordsQuery struct {
	Select  string
	Where   string
	GroupBy string
	OrderBy string
	Limit   int
	Offset  int
}

func (q RecordsQuery) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.Select != "" {
		v.Set("select", q.Select)
	}
	if q.Where != "" {
		v.Set("where", q.Where)
	}
	if q.GroupBy != "" {
		v.Set("group_by", q.GroupBy)
	}
	if q.OrderBy != "" {
		v.Set("order_by", q.OrderBy)
	}
	return v
}

// FacetsQuery requests value distributions for one or more facet fields. The
// facet parameter is repeatable.
type FacetsQuery struct {
	Facets []string
	Where  string
}

func (q FacetsQuery) Values() url.Values {
	v := url.Values{}
	for _, f := range q.Facets {
		v.Add("facet", f)
	}
	if q.Where != "" {
		v.Set("where", q.Where)
	}
	return v
}

// ExportQuery shapes an export URL. Limit is included only when positive.
type ExportQuery struct {
	Select  string
	Where   string
	GroupBy string
	OrderBy string
	Limit   int
}

func (q ExportQuery) Values() url.Values {
	v := url.Values{}
	if q.Select != "" {
		v.Set("select", q.Select)
	}
	if q.Where != "" {
		v.Set("where", q.Where)
	}
	if q.GroupBy != "" {
		v.Set("group_by", q.GroupBy)
	}
	if q.OrderBy != "" {
		v.Set("order_by", q.OrderBy)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// searchWhere builds the ODSQL full-text filter for record search. The query
// is inserted verbatim; the remote search() function defines its own syntax.
func searchWhere(query string) string {
	return "search(" + query + ")"
}
