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
	"context"
	"fmt"
	"strings"

	"github.com/dstotijn/go-mcp"
)

// createGetDatasetRecordsTool creates a tool to retrieve records with
// optional ODSQL filtering and sorting.
func createGetDatasetRecordsTool(client *Client) mcp.Tool {
	type GetDatasetRecordsParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Maximum number of records to return
		Limit int `json:"limit,omitempty"`
		// Number of records to skip (for pagination)
		Offset int `json:"offset,omitempty"`
		// ODSQL select clause to choose specific fields
		Select string `json:"select,omitempty"`
		// ODSQL where clause to filter records
		Where string `json:"where,omitempty"`
		// ODSQL order by clause to sort records
		OrderBy string `json:"order_by,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[GetDatasetRecordsParams]{
		Name:        "get_dataset_records",
		Description: "Get records from a dataset with optional filtering and sorting",
		HandleFunc: func(ctx context.Context, params GetDatasetRecordsParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.Limit <= 0 {
				params.Limit = defaultListLimit
			}
			q := RecordsQuery{
				Select:  params.Select,
				Where:   params.Where,
				OrderBy: params.OrderBy,
				Limit:   params.Limit,
				Offset:  params.Offset,
			}
			return newToolCallResult(getDatasetRecordsReport(client, params.DatasetID, q))
		},
	})
}

func getDatasetRecordsReport(c *Client, datasetID string, q RecordsQuery) string {
	rs, err := c.GetRecords(datasetID, q)
	if err != nil {
		return fmt.Sprintf("Error retrieving dataset records: %v", err)
	}
	if len(rs.Results) == 0 {
		return fmt.Sprintf("No records found for dataset '%s' with the specified criteria.", datasetID)
	}

	records := rs.Results
	output := []string{
		fmt.Sprintf("Records from dataset: %s (ID: %s)", datasetTitle(c, datasetID), datasetID),
		fmt.Sprintf("Showing %d of %d total records (offset: %d)", len(records), rs.TotalCount, q.Offset),
	}

	if records[0].Len() > maxTableColumns {
		output = append(output, fmt.Sprintf("\nFound %d fields in the records. Here's a summary of the first %d records:",
			records[0].Len(), len(records)))
		for i, rec := range records {
			output = append(output, fmt.Sprintf("\nRecord %d:", i+1))
			output = append(output, recordLines(rec)...)
		}
	} else {
		table := tableLines(records)
		output = append(output, "\n"+table[0])
		output = append(output, table[1:]...)
	}

	if q.Select != "" || q.Where != "" || q.OrderBy != "" {
		output = append(output, "\nNote: This query used ODSQL syntax:")
		if q.Select != "" {
			output = append(output, "- SELECT: "+q.Select)
		}
		if q.Where != "" {
			output = append(output, "- WHERE: "+q.Where)
		}
		if q.OrderBy != "" {
			output = append(output, "- ORDER BY: "+q.OrderBy)
		}
	}
	return strings.Join(output, "\n")
}

// createGetDatasetAggregatesTool creates a tool to run ODSQL aggregations.
func createGetDatasetAggregatesTool(client *Client) mcp.Tool {
	type GetDatasetAggregatesParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// ODSQL select clause with aggregation functions (count, sum, avg, etc.)
		Select string `json:"select"`
		// ODSQL group by clause to aggregate by field values
		GroupBy string `json:"group_by,omitempty"`
		// ODSQL where clause to filter records
		Where string `json:"where,omitempty"`
		// Maximum number of results
		Limit int `json:"limit,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[GetDatasetAggregatesParams]{
		Name:        "get_dataset_aggregates",
		Description: "Get aggregated data from a dataset using ODSQL aggregation functions",
		HandleFunc: func(ctx context.Context, params GetDatasetAggregatesParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.Select == "" {
				return newToolCallErrorResult("Select clause is required")
			}
			if params.Limit <= 0 {
				params.Limit = 100
			}
			return newToolCallResult(getDatasetAggregatesReport(client, params.DatasetID, params.Select, params.GroupBy, params.Where, params.Limit))
		},
	})
}

func getDatasetAggregatesReport(c *Client, datasetID, sel, groupBy, where string, limit int) string {
	rs, err := c.GetRecords(datasetID, RecordsQuery{
		Select:  sel,
		GroupBy: groupBy,
		Where:   where,
		Limit:   limit,
	})
	if err != nil {
		return fmt.Sprintf("Error performing aggregation: %v", err)
	}
	if len(rs.Results) == 0 {
		return fmt.Sprintf("No aggregation results found for dataset '%s' with the specified criteria.", datasetID)
	}

	queryLine := "Query: SELECT " + sel
	if groupBy != "" {
		queryLine += " GROUP BY " + groupBy
	}
	if where != "" {
		queryLine += " WHERE " + where
	}

	output := []string{
		fmt.Sprintf("Aggregation results for dataset: %s (ID: %s)", datasetTitle(c, datasetID), datasetID),
		queryLine,
		fmt.Sprintf("Results: %d rows", len(rs.Results)),
	}

	table := tableLines(rs.Results)
	output = append(output, "\n"+table[0])
	output = append(output, table[1:]...)

	return strings.Join(output, "\n")
}

// createFacetAnalysisTool creates a tool to analyze facet value
// distributions.
func createFacetAnalysisTool(client *Client) mcp.Tool {
	type FacetAnalysisParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Comma-separated list of field names to use as facets
		Facets string `json:"facets"`
		// ODSQL where clause to filter records
		Where string `json:"where,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[FacetAnalysisParams]{
		Name:        "facet_analysis",
		Description: "Analyze facet values distribution for a dataset",
		HandleFunc: func(ctx context.Context, params FacetAnalysisParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			facets := splitFacets(params.Facets)
			if len(facets) == 0 {
				return newToolCallErrorResult("At least one facet field is required")
			}
			return newToolCallResult(facetAnalysisReport(client, params.DatasetID, facets, params.Where))
		},
	})
}

func splitFacets(s string) []string {
	var facets []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			facets = append(facets, f)
		}
	}
	return facets
}

func facetAnalysisReport(c *Client, datasetID string, facets []string, where string) string {
	resp, err := c.GetFacets(datasetID, FacetsQuery{Facets: facets, Where: where})
	if err != nil {
		return fmt.Sprintf("Error retrieving facets: %v", err)
	}
	if len(resp.Facets) == 0 {
		return fmt.Sprintf("No facet data found for dataset '%s' with the specified criteria.", datasetID)
	}

	header := "Analyzing facets: " + strings.Join(facets, ", ")
	if where != "" {
		header += " WHERE " + where
	}
	output := []string{
		fmt.Sprintf("Facet analysis for dataset: %s (ID: %s)", datasetTitle(c, datasetID), datasetID),
		header,
	}

	for _, group := range resp.Facets {
		name := group.Name
		if name == "" {
			name = placeholderUnknown
		}
		output = append(output, fmt.Sprintf("\nFacet: %s (%d values)", name, len(group.Facets)))

		if len(group.Facets) == 0 {
			output = append(output, "  No values found for this facet.")
			continue
		}

		values := sortedFacetValues(group.Facets)
		shown := values
		if len(shown) > maxFacetValues {
			shown = shown[:maxFacetValues]
		}

		output = append(output, "\n| Value | Count | State |", "| --- | --- | --- |")
		for _, v := range shown {
			valueName, state := v.Name, v.State
			if valueName == "" {
				valueName = placeholderNA
			}
			if state == "" {
				state = placeholderNA
			}
			output = append(output, fmt.Sprintf("| %s | %d | %s |", valueName, v.Count, state))
		}

		if len(values) > maxFacetValues {
			output = append(output, fmt.Sprintf("\n(Showing top %d of %d values)", maxFacetValues, len(values)))
		}
	}
	return strings.Join(output, "\n")
}

// createSearchDatasetRecordsTool creates a tool for full-text search within a
// dataset.
func createSearchDatasetRecordsTool(client *Client) mcp.Tool {
	type SearchDatasetRecordsParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Search query to find records
		Query string `json:"query"`
		// Maximum number of records to return
		Limit int `json:"limit,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[SearchDatasetRecordsParams]{
		Name:        "search_dataset_records",
		Description: "Search for specific records within a dataset",
		HandleFunc: func(ctx context.Context, params SearchDatasetRecordsParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.Query == "" {
				return newToolCallErrorResult("Search query is required")
			}
			if params.Limit <= 0 {
				params.Limit = defaultListLimit
			}
			return newToolCallResult(searchDatasetRecordsReport(client, params.DatasetID, params.Query, params.Limit))
		},
	})
}

func searchDatasetRecordsReport(c *Client, datasetID, query string, limit int) string {
	rs, err := c.SearchRecords(datasetID, query, limit)
	if err != nil {
		return fmt.Sprintf("Error searching dataset records: %v", err)
	}
	if len(rs.Results) == 0 {
		return fmt.Sprintf("No records found matching '%s' in dataset '%s'.", query, datasetID)
	}

	output := []string{
		fmt.Sprintf("Search results for '%s' in dataset: %s (ID: %s)", query, datasetTitle(c, datasetID), datasetID),
		fmt.Sprintf("Found %d matching records. Showing first %d:", rs.TotalCount, len(rs.Results)),
	}

	for i, rec := range rs.Results {
		output = append(output, fmt.Sprintf("\nRecord %d:", i+1))
		output = append(output, recordLines(rec)...)
	}
	return strings.Join(output, "\n")
}

// createGetExportURLTool creates a tool that returns a download URL for
// dataset records in a given format. The export itself is produced remotely;
// the URL is never fetched here.
func createGetExportURLTool(client *Client) mcp.Tool {
	type GetExportURLParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Export format (csv, json, geojson, etc.)
		ExportFormat string `json:"export_format,omitempty"`
		// ODSQL select clause
		Select string `json:"select,omitempty"`
		// ODSQL where clause
		Where string `json:"where,omitempty"`
		// ODSQL group by clause
		GroupBy string `json:"group_by,omitempty"`
		// ODSQL order by clause
		OrderBy string `json:"order_by,omitempty"`
		// Maximum number of results
		Limit int `json:"limit,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[GetExportURLParams]{
		Name:        "get_export_url",
		Description: "Get a URL for exporting dataset records in various formats",
		HandleFunc: func(ctx context.Context, params GetExportURLParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.ExportFormat == "" {
				params.ExportFormat = "csv"
			}
			q := ExportQuery{
				Select:  params.Select,
				Where:   params.Where,
				GroupBy: params.GroupBy,
				OrderBy: params.OrderBy,
				Limit:   params.Limit,
			}
			return newToolCallResult(getExportURLReport(client, params.DatasetID, params.ExportFormat, q))
		},
	})
}

func getExportURLReport(c *Client, datasetID, format string, q ExportQuery) string {
	exportURL := c.ExportURL(datasetID, format, q)

	output := []string{
		fmt.Sprintf("Export URL for dataset: %s (ID: %s)", datasetTitle(c, datasetID), datasetID),
		fmt.Sprintf("Format: %s", strings.ToUpper(format)),
	}

	var queryParams []string
	if q.Select != "" {
		queryParams = append(queryParams, "SELECT: "+q.Select)
	}
	if q.Where != "" {
		queryParams = append(queryParams, "WHERE: "+q.Where)
	}
	if q.GroupBy != "" {
		queryParams = append(queryParams, "GROUP BY: "+q.GroupBy)
	}
	if q.OrderBy != "" {
		queryParams = append(queryParams, "ORDER BY: "+q.OrderBy)
	}
	if q.Limit > 0 {
		queryParams = append(queryParams, fmt.Sprintf("LIMIT: %d", q.Limit))
	}
	if len(queryParams) > 0 {
		output = append(output, "Query parameters: "+strings.Join(queryParams, ", "))
	}

	output = append(output,
		"\nExport URL: "+exportURL,
		"\nNote: This URL can be used to download the dataset in the specified format.",
	)
	return strings.Join(output, "\n")
}
