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
	"sort"
	"strings"

	"github.com/dstotijn/go-mcp"
)

// createSearchDatasetsTool creates a tool to search the catalog by keyword.
func createSearchDatasetsTool(client *Client) mcp.Tool {
	type SearchDatasetsParams struct {
		// Search query to find datasets
		Query string `json:"query"`
		// Maximum number of datasets to return
		Limit int `json:"limit,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[SearchDatasetsParams]{
		Name:        "search_datasets",
		Description: "Search for datasets in the Opendatasoft catalog by keyword",
		HandleFunc: func(ctx context.Context, params SearchDatasetsParams) *mcp.CallToolResult {
			if params.Query == "" {
				return newToolCallErrorResult("Search query is required")
			}
			if params.Limit <= 0 {
				params.Limit = defaultListLimit
			}
			return newToolCallResult(searchDatasetsReport(client, params.Query, params.Limit))
		},
	})
}

func searchDatasetsReport(c *Client, query string, limit int) string {
	page, err := c.ListDatasets(ListQuery{Search: query, Limit: limit})
	if err != nil {
		return fmt.Sprintf("Error searching datasets: %v", err)
	}
	if len(page.Results) == 0 {
		return "No datasets found matching your query."
	}

	output := []string{fmt.Sprintf("Found %d datasets matching '%s'. Here are the first %d results:",
		page.TotalCount, query, len(page.Results))}

	for i, dataset := range page.Results {
		metas := dataset.Doc("metas", "default")
		description := truncateDescription(stripHTMLTags(metas.Text(noDescription, "description")))

		output = append(output,
			fmt.Sprintf("\n%d. %s (ID: %s)", i+1, metas.Text(untitledDataset, "title"), dataset.Text(placeholderNA, "dataset_id")),
			fmt.Sprintf("   Publisher: %s", metas.Text(unknownPublisher, "publisher")),
			fmt.Sprintf("   Description: %s", description),
		)
	}
	return strings.Join(output, "\n")
}

// createGetDatasetInfoTool creates a tool to retrieve dataset metadata.
func createGetDatasetInfoTool(client *Client) mcp.Tool {
	type GetDatasetInfoParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
	}

	return mcp.CreateTool(mcp.ToolDef[GetDatasetInfoParams]{
		Name:        "get_dataset_info",
		Description: "Get detailed information about a specific dataset",
		HandleFunc: func(ctx context.Context, params GetDatasetInfoParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			return newToolCallResult(getDatasetInfoReport(client, params.DatasetID))
		},
	})
}

func getDatasetInfoReport(c *Client, datasetID string) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error retrieving dataset: %v", err)
	}
	if len(dataset) == 0 {
		return fmt.Sprintf("Dataset with ID '%s' not found.", datasetID)
	}

	metas := dataset.Doc("metas", "default")
	description := stripHTMLTags(metas.Text(noDescription, "description"))
	fields := dataset.Docs("fields")

	output := []string{
		fmt.Sprintf("Dataset: %s (ID: %s)", metas.Text(untitledDataset, "title"), datasetID),
		fmt.Sprintf("Publisher: %s", metas.Text(unknownPublisher, "publisher")),
		fmt.Sprintf("Record Count: %s", metas.Text(placeholderUnknown, "records_count")),
		"\nDescription:",
		description,
		fmt.Sprintf("\nFields (%d):", len(fields)),
	}

	for _, field := range fields {
		name := field.Text("Unnamed", "name")
		line := fmt.Sprintf("  - %s (%s): %s", field.Text(name, "label"), name, field.Text(placeholderUnknown, "type"))
		if desc := field.Text("", "description"); desc != "" {
			line += " - " + desc
		}
		output = append(output, line)
	}
	return strings.Join(output, "\n")
}

// createListDatasetsByPublisherTool creates a tool to list datasets from a
// specific publisher.
func createListDatasetsByPublisherTool(client *Client) mcp.Tool {
	type ListDatasetsByPublisherParams struct {
		// Name of the publisher
		Publisher string `json:"publisher"`
		// Maximum number of datasets to return
		Limit int `json:"limit,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[ListDatasetsByPublisherParams]{
		Name:        "list_datasets_by_publisher",
		Description: "List datasets from a specific publisher",
		HandleFunc: func(ctx context.Context, params ListDatasetsByPublisherParams) *mcp.CallToolResult {
			if params.Publisher == "" {
				return newToolCallErrorResult("Publisher name is required")
			}
			if params.Limit <= 0 {
				params.Limit = defaultListLimit
			}
			return newToolCallResult(listDatasetsByPublisherReport(client, params.Publisher, params.Limit))
		},
	})
}

func listDatasetsByPublisherReport(c *Client, publisher string, limit int) string {
	page, err := c.ListDatasets(ListQuery{Publisher: publisher, Limit: limit})
	if err != nil {
		return fmt.Sprintf("Error retrieving datasets: %v", err)
	}
	if len(page.Results) == 0 {
		return fmt.Sprintf("No datasets found from publisher: %s.", publisher)
	}

	output := []string{fmt.Sprintf("Found %d datasets from publisher '%s'. Here are the first %d results:",
		page.TotalCount, publisher, len(page.Results))}

	for i, dataset := range page.Results {
		metas := dataset.Doc("metas", "default")

		themeInfo := ""
		if theme := firstTheme(metas); theme != "" {
			themeInfo = " | Theme: " + theme
		}

		output = append(output,
			fmt.Sprintf("\n%d. %s (ID: %s)", i+1, metas.Text(untitledDataset, "title"), dataset.Text(placeholderNA, "dataset_id")),
			fmt.Sprintf("   Records: %s%s", metas.Text(placeholderUnknown, "records_count"), themeInfo),
		)
	}
	return strings.Join(output, "\n")
}

// createListDatasetFieldsTool creates a tool to list dataset fields with
// their types and descriptions.
func createListDatasetFieldsTool(client *Client) mcp.Tool {
	type ListDatasetFieldsParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
	}

	return mcp.CreateTool(mcp.ToolDef[ListDatasetFieldsParams]{
		Name:        "list_dataset_fields",
		Description: "List all fields in a dataset with their types and descriptions",
		HandleFunc: func(ctx context.Context, params ListDatasetFieldsParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			return newToolCallResult(listDatasetFieldsReport(client, params.DatasetID))
		},
	})
}

func listDatasetFieldsReport(c *Client, datasetID string) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error retrieving dataset: %v", err)
	}
	if len(dataset) == 0 {
		return fmt.Sprintf("Dataset with ID '%s' not found.", datasetID)
	}

	fields := dataset.Docs("fields")
	if len(fields) == 0 {
		return fmt.Sprintf("No fields found for dataset '%s'.", datasetID)
	}

	title := dataset.Text(untitledDataset, "metas", "default", "title")
	output := []string{fmt.Sprintf("Fields for dataset: %s (ID: %s)", title, datasetID)}

	for i, field := range fields {
		name := field.Text("Unnamed", "name")
		output = append(output,
			fmt.Sprintf("\n%d. %s (%s)", i+1, field.Text(name, "label"), name),
			fmt.Sprintf("   Type: %s", field.Text(placeholderUnknown, "type")),
			fmt.Sprintf("   Description: %s", field.Text("No description available", "description")),
		)

		if annotations := field.Doc("annotations"); len(annotations) > 0 {
			// Annotation maps carry no upstream order; sort for reproducible output.
			keys := make([]string, 0, len(annotations))
			for k := range annotations {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, fmt.Sprintf("%s: %s", k, annotations.Text("", k)))
			}
			output = append(output, "   Annotations: "+strings.Join(parts, ", "))
		}
	}
	return strings.Join(output, "\n")
}
