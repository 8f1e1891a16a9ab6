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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestClient starts a fake Explore API server and returns a client
// pointing at it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "")
}

// recordsHandler serves dataset metadata plus records responses keyed by the
// select parameter of the incoming request. Unknown select clauses get a 400,
// mimicking an upstream ODSQL error.
func recordsHandler(datasetID, datasetJSON string, bySelect map[string]string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(apiPath+"/catalog/datasets/"+datasetID, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, datasetJSON)
	})
	mux.HandleFunc(apiPath+"/catalog/datasets/"+datasetID+"/records", func(w http.ResponseWriter, r *http.Request) {
		body, ok := bySelect[r.URL.Query().Get("select")]
		if !ok {
			http.Error(w, `{"error_code": "ODSQLError"}`, http.StatusBadRequest)
			return
		}
		io.WriteString(w, body)
	})
	return mux
}

// mustRecords decodes a JSON array into records, failing the test on error.
func mustRecords(t *testing.T, data string) []Record {
	t.Helper()
	var records []Record
	require.NoError(t, json.Unmarshal([]byte(data), &records))
	return records
}

func TestClientSendsAPIKeyHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"total_count": 0, "results": []}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "secret-key")
	_, err := client.ListDatasets(ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, "Apikey secret-key", gotAuth)
}

func TestClientAnonymousRequestOmitsAuthorization(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		io.WriteString(w, `{"total_count": 0, "results": []}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "")
	_, err := client.ListDatasets(ListQuery{Limit: 10})
	require.NoError(t, err)
	require.False(t, sawHeader)
}

func TestClientSurfacesHTTPErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_code": "UnknownDataset"}`, http.StatusNotFound)
	}))

	_, err := client.GetDataset("nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code: 404")
}
