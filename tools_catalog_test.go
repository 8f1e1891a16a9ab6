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
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchDatasetsReport(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{
			"total_count": 42,
			"results": [
				{
					"dataset_id": "bikes",
					"metas": {"default": {
						"title": "Bike Stations",
						"publisher": "City of Paris",
						"description": "<p>Availability of bikes.</p>"
					}}
				},
				{
					"dataset_id": "lanes",
					"metas": {"default": {"title": "Bike Lanes"}}
				}
			]
		}`)
	}))

	got := searchDatasetsReport(client, "bike", 2)
	want := "Found 42 datasets matching 'bike'. Here are the first 2 results:\n" +
		"\n1. Bike Stations (ID: bikes)\n" +
		"   Publisher: City of Paris\n" +
		"   Description: Availability of bikes. \n" +
		"\n2. Bike Lanes (ID: lanes)\n" +
		"   Publisher: Unknown Publisher\n" +
		"   Description: No description available."
	assert.Equal(t, want, got)

	assert.Equal(t, `"bike"`, gotQuery.Get("where"))
	assert.Equal(t, "2", gotQuery.Get("limit"))
	assert.Equal(t, "0", gotQuery.Get("offset"))
}

func TestSearchDatasetsReportNoResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total_count": 0, "results": []}`)
	}))
	assert.Equal(t, "No datasets found matching your query.", searchDatasetsReport(client, "nothing", 10))
}

func TestSearchDatasetsReportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	got := searchDatasetsReport(client, "bike", 10)
	assert.Contains(t, got, "Error searching datasets:")
	assert.Contains(t, got, "unexpected status code: 500")
}

func TestGetDatasetInfoReport(t *testing.T) {
	client := newTestClient(t, recordsHandler("bikes", `{
		"dataset_id": "bikes",
		"metas": {"default": {
			"title": "Bike Stations",
			"publisher": "City of Paris",
			"records_count": 1200,
			"description": "<p>Station data.</p>"
		}},
		"fields": [
			{"name": "station", "label": "Station", "type": "text", "description": "Station name"},
			{"name": "bikes", "type": "int"}
		]
	}`, nil))

	got := getDatasetInfoReport(client, "bikes")
	want := "Dataset: Bike Stations (ID: bikes)\n" +
		"Publisher: City of Paris\n" +
		"Record Count: 1200\n" +
		"\nDescription:\n" +
		"Station data. \n" +
		"\nFields (2):\n" +
		"  - Station (station): text - Station name\n" +
		"  - bikes (bikes): int"
	assert.Equal(t, want, got)
}

func TestGetDatasetInfoReportNotFound(t *testing.T) {
	client := newTestClient(t, recordsHandler("ghost", `{}`, nil))
	assert.Equal(t, "Dataset with ID 'ghost' not found.", getDatasetInfoReport(client, "ghost"))
}

func TestListDatasetsByPublisherReport(t *testing.T) {
	var gotWhere string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWhere = r.URL.Query().Get("where")
		io.WriteString(w, `{
			"total_count": 3,
			"results": [
				{
					"dataset_id": "bikes",
					"metas": {"default": {
						"title": "Bike Stations",
						"records_count": 1200,
						"theme": ["Transport", "Mobility"]
					}}
				},
				{
					"dataset_id": "trees",
					"metas": {"default": {"title": "Street Trees"}}
				}
			]
		}`)
	}))

	got := listDatasetsByPublisherReport(client, "City of Paris", 2)
	want := "Found 3 datasets from publisher 'City of Paris'. Here are the first 2 results:\n" +
		"\n1. Bike Stations (ID: bikes)\n" +
		"   Records: 1200 | Theme: Transport\n" +
		"\n2. Street Trees (ID: trees)\n" +
		"   Records: Unknown"
	assert.Equal(t, want, got)
	assert.Equal(t, `publisher="City of Paris"`, gotWhere)
}

func TestListDatasetsByPublisherReportNoResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total_count": 0, "results": []}`)
	}))
	assert.Equal(t, "No datasets found from publisher: Nobody.", listDatasetsByPublisherReport(client, "Nobody", 10))
}

func TestListDatasetFieldsReport(t *testing.T) {
	client := newTestClient(t, recordsHandler("bikes", `{
		"dataset_id": "bikes",
		"metas": {"default": {"title": "Bike Stations"}},
		"fields": [
			{
				"name": "station",
				"label": "Station",
				"type": "text",
				"description": "Station name",
				"annotations": {"facet": true, "decimals": 2}
			},
			{"name": "bikes", "type": "int"}
		]
	}`, nil))

	got := listDatasetFieldsReport(client, "bikes")
	want := "Fields for dataset: Bike Stations (ID: bikes)\n" +
		"\n1. Station (station)\n" +
		"   Type: text\n" +
		"   Description: Station name\n" +
		"   Annotations: decimals: 2, facet: true\n" +
		"\n2. bikes (bikes)\n" +
		"   Type: int\n" +
		"   Description: No description available"
	assert.Equal(t, want, got)
}

func TestListDatasetFieldsReportNoFields(t *testing.T) {
	client := newTestClient(t, recordsHandler("empty", `{"dataset_id": "empty", "fields": []}`, nil))
	assert.Equal(t, "No fields found for dataset 'empty'.", listDatasetFieldsReport(client, "empty"))
}
