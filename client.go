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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const apiPath = "/api/explore/v2.1"

// Client is an Opendatasoft Explore API v2.1 client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an Explore API client for the given domain. An empty
// apiKey issues anonymous requests. No local timeout is enforced; the
// transport's defaults apply.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (c *Client) get(path string, params url.Values, out any) error {
	u := c.baseURL + apiPath + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Apikey "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// CatalogPage is one page of catalog results.
type CatalogPage struct {
	TotalCount int        `json:"total_count"`
	Results    []Document `json:"results"`
}

// RecordSet is one page of dataset records.
type RecordSet struct {
	TotalCount int      `json:"total_count"`
	Results    []Record `json:"results"`
}

// FacetValue is one (value name, occurrence count, state) entry of a facet.
type FacetValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	State string `json:"state"`
}

// FacetGroup holds the enumerated values of a single facet field.
type FacetGroup struct {
	Name   string       `json:"name"`
	Facets []FacetValue `json:"facets"`
}

// FacetsResponse represents the response from the facets endpoint.
type FacetsResponse struct {
	Facets []FacetGroup `json:"facets"`
}

// ListDatasets retrieves a page of datasets from the catalog.
func (c *Client) ListDatasets(q ListQuery) (*CatalogPage, error) {
	var page CatalogPage
	if err := c.get("/catalog/datasets", q.Values(), &page); err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	return &page, nil
}

// GetDataset retrieves the metadata document for a single dataset.
func (c *Client) GetDataset(datasetID string) (Document, error) {
	var doc Document
	if err := c.get("/catalog/datasets/"+datasetID, nil, &doc); err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return doc, nil
}

// GetRecords retrieves records from a dataset.
func (c *Client) GetRecords(datasetID string, q RecordsQuery) (*RecordSet, error) {
	var rs RecordSet
	if err := c.get("/catalog/datasets/"+datasetID+"/records", q.Values(), &rs); err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	return &rs, nil
}

// GetFacets retrieves facet value distributions for a dataset.
func (c *Client) GetFacets(datasetID string, q FacetsQuery) (*FacetsResponse, error) {
	var resp FacetsResponse
	if err := c.get("/catalog/datasets/"+datasetID+"/facets", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get facets: %w", err)
	}
	return &resp, nil
}

// ExportURL returns the fully-qualified export URL for a dataset in the given
// format. The URL is never fetched locally.
func (c *Client) ExportURL(datasetID, format string, q ExportQuery) string {
	return c.baseURL + apiPath + "/catalog/datasets/" + datasetID + "/exports/" + format + "?" + q.Values().Encode()
}

// SearchRecords runs a full-text search within a dataset.
func (c *Client) SearchRecords(datasetID, query string, limit int) (*RecordSet, error) {
	return c.GetRecords(datasetID, RecordsQuery{Where: searchWhere(query), Limit: limit})
}
