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

// Field type classes of the Explore API schema. Analysis tools compare a
// field's declared type against these before issuing any aggregation request.
var (
	numericFieldTypes = map[string]bool{"int": true, "double": true, "decimal": true, "float": true}
	dateFieldTypes    = map[string]bool{"date": true, "datetime": true}
	geoFieldTypes     = map[string]bool{"geo_point_2d": true, "geo_shape": true}
)

// findField locates a field descriptor by name within a dataset document.
func findField(dataset Document, name string) Document {
	for _, field := range dataset.Docs("fields") {
		if field.Text("", "name") == name {
			return field
		}
	}
	return nil
}

// createSummarizeDatasetTool creates a tool producing a full dataset summary.
func createSummarizeDatasetTool(client *Client) mcp.Tool {
	type SummarizeDatasetParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
	}

	return mcp.CreateTool(mcp.ToolDef[SummarizeDatasetParams]{
		Name:        "summarize_dataset",
		Description: "Generate a comprehensive summary of a dataset including metadata, schema, and sample data",
		HandleFunc: func(ctx context.Context, params SummarizeDatasetParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			return newToolCallResult(summarizeDatasetReport(client, params.DatasetID))
		},
	})
}

func summarizeDatasetReport(c *Client, datasetID string) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error retrieving dataset information: %v", err)
	}
	if len(dataset) == 0 {
		return fmt.Sprintf("Dataset with ID '%s' not found.", datasetID)
	}

	metas := dataset.Doc("metas", "default")
	description := stripHTMLTags(metas.Text(noDescription, "description"))
	recordsCount := metas.Text(placeholderUnknown, "records_count")
	fields := dataset.Docs("fields")

	// Sample records are an enrichment; a failed lookup just drops the section.
	var sampleRecords []Record
	if rs, err := c.GetRecords(datasetID, RecordsQuery{Limit: sampleRecordCount}); err == nil {
		sampleRecords = rs.Results
	}

	output := []string{
		fmt.Sprintf("# Dataset Summary: %s", metas.Text(untitledDataset, "title")),
		"\n## Basic Information",
		fmt.Sprintf("- **Dataset ID**: %s", datasetID),
		fmt.Sprintf("- **Publisher**: %s", metas.Text(unknownPublisher, "publisher")),
		fmt.Sprintf("- **Theme**: %s", firstTheme(metas)),
		fmt.Sprintf("- **License**: %s", metas.Text(unknownLicense, "license")),
		fmt.Sprintf("- **Records Count**: %s", recordsCount),
		"\n## Description",
		description,
		fmt.Sprintf("\n## Schema (%d fields)", len(fields)),
	}

	// Field type distribution, in order of first appearance.
	typeCounts := map[string]int{}
	var typeOrder []string
	for _, field := range fields {
		name := field.Text("Unnamed", "name")
		fieldType := field.Text(placeholderUnknown, "type")
		if typeCounts[fieldType] == 0 {
			typeOrder = append(typeOrder, fieldType)
		}
		typeCounts[fieldType]++
		output = append(output, fmt.Sprintf("- **%s** (%s): %s", field.Text(name, "label"), name, fieldType))
	}

	output = append(output, "\n## Field Type Distribution")
	for _, t := range typeOrder {
		output = append(output, fmt.Sprintf("- %s: %d fields", t, typeCounts[t]))
	}

	if len(sampleRecords) > 0 {
		output = append(output, fmt.Sprintf("\n## Sample Records (5 of %s)", recordsCount))
		for i, rec := range sampleRecords {
			output = append(output, fmt.Sprintf("\n### Record %d", i+1))
			for _, key := range rec.Keys() {
				output = append(output, fmt.Sprintf("- **%s**: %s", key, rec.Text(key, "")))
			}
		}
	}
	return strings.Join(output, "\n")
}

// createAnalyzeNumericFieldTool creates a tool analyzing a numeric field.
func createAnalyzeNumericFieldTool(client *Client) mcp.Tool {
	type AnalyzeNumericFieldParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Name of the numeric field to analyze
		FieldName string `json:"field_name"`
	}

	return mcp.CreateTool(mcp.ToolDef[AnalyzeNumericFieldParams]{
		Name:        "analyze_numeric_field",
		Description: "Analyze a numeric field in a dataset, including min, max, average, and distribution",
		HandleFunc: func(ctx context.Context, params AnalyzeNumericFieldParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.FieldName == "" {
				return newToolCallErrorResult("Field name is required")
			}
			return newToolCallResult(analyzeNumericFieldReport(client, params.DatasetID, params.FieldName))
		},
	})
}

func analyzeNumericFieldReport(c *Client, datasetID, fieldName string) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error validating field: %v", err)
	}
	field := findField(dataset, fieldName)
	if field == nil {
		return fmt.Sprintf("Field '%s' not found in dataset '%s'.", fieldName, datasetID)
	}
	fieldType := field.Text("", "type")
	if !numericFieldTypes[fieldType] {
		return fmt.Sprintf("Field '%s' is not a numeric field (type: %s).", fieldName, fieldType)
	}

	stats, err := c.GetRecords(datasetID, RecordsQuery{
		Select: fmt.Sprintf("min(%s) as min, max(%s) as max, avg(%s) as avg, count(%s) as count",
			fieldName, fieldName, fieldName, fieldName),
		Limit: defaultListLimit,
	})
	if err != nil {
		return fmt.Sprintf("Error computing field statistics: %v", err)
	}
	if len(stats.Results) == 0 {
		return fmt.Sprintf("Failed to compute statistics for field '%s'.", fieldName)
	}
	statValues := stats.Results[0]

	// Distribution over ten equal-width buckets, each counted by a dedicated
	// aggregation query. Any failed bucket lookup drops the whole section.
	var distribution []string
	if minVal, okMin := statValues.Number("min"); okMin {
		if maxVal, okMax := statValues.Number("max"); okMax {
			buckets := histogramBuckets(minVal, maxVal)
			for i, b := range buckets {
				rangeResult, err := c.GetRecords(datasetID, RecordsQuery{
					Select: "count(*) as count",
					Where:  rangeWhere(fieldName, b, i == len(buckets)-1),
					Limit:  defaultListLimit,
				})
				if err != nil {
					distribution = nil
					break
				}
				count := "0"
				if len(rangeResult.Results) > 0 {
					count = rangeResult.Results[0].Text("count", "0")
				}
				distribution = append(distribution, fmt.Sprintf("| %.2f - %.2f | %s |", b.Lower, b.Upper, count))
			}
		}
	}

	output := []string{
		fmt.Sprintf("# Analysis of %s (%s)", field.Text(fieldName, "label"), fieldName),
		fmt.Sprintf("\nDataset: %s (ID: %s)", dataset.Text(unknownDataset, "metas", "default", "title"), datasetID),
		"\n## Basic Statistics",
		fmt.Sprintf("- **Count**: %s", statValues.Text("count", placeholderNA)),
		fmt.Sprintf("- **Minimum**: %s", statValues.Text("min", placeholderNA)),
		fmt.Sprintf("- **Maximum**: %s", statValues.Text("max", placeholderNA)),
		fmt.Sprintf("- **Average**: %s", statValues.Text("avg", placeholderNA)),
	}

	if len(distribution) > 0 {
		output = append(output, "\n## Value Distribution", "| Range | Count |", "| --- | --- |")
		output = append(output, distribution...)
	}
	return strings.Join(output, "\n")
}

// createAnalyzeTextFieldTool creates a tool analyzing a text field.
func createAnalyzeTextFieldTool(client *Client) mcp.Tool {
	type AnalyzeTextFieldParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Name of the text field to analyze
		FieldName string `json:"field_name"`
		// Maximum number of unique values to analyze
		Limit int `json:"limit,omitempty"`
	}

	return mcp.CreateTool(mcp.ToolDef[AnalyzeTextFieldParams]{
		Name:        "analyze_text_field",
		Description: "Analyze a text field in a dataset, including value frequency",
		HandleFunc: func(ctx context.Context, params AnalyzeTextFieldParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.FieldName == "" {
				return newToolCallErrorResult("Field name is required")
			}
			if params.Limit <= 0 {
				params.Limit = maxFacetValues
			}
			return newToolCallResult(analyzeTextFieldReport(client, params.DatasetID, params.FieldName, params.Limit))
		},
	})
}

func analyzeTextFieldReport(c *Client, datasetID, fieldName string, limit int) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error validating field: %v", err)
	}
	field := findField(dataset, fieldName)
	if field == nil {
		return fmt.Sprintf("Field '%s' not found in dataset '%s'.", fieldName, datasetID)
	}
	fieldType := field.Text("", "type")
	if fieldType != "text" {
		return fmt.Sprintf("Field '%s' is not a text field (type: %s).", fieldName, fieldType)
	}

	frequency, err := c.GetRecords(datasetID, RecordsQuery{
		Select:  fmt.Sprintf("%s, count(*) as count", fieldName),
		GroupBy: fieldName,
		OrderBy: "count DESC",
		Limit:   limit,
	})
	if err != nil {
		return fmt.Sprintf("Error computing value frequency: %v", err)
	}
	if len(frequency.Results) == 0 {
		return fmt.Sprintf("Failed to compute value frequency for field '%s'.", fieldName)
	}
	values := frequency.Results

	// Total and distinct counts are enrichment lookups; failures degrade to
	// placeholders and N/A percentages.
	var totalRecords any = placeholderUnknown
	if rs, err := c.GetRecords(datasetID, RecordsQuery{Select: "count(*) as total", Limit: defaultListLimit}); err == nil && len(rs.Results) > 0 {
		totalRecords = rs.Results[0].Value("total", 0)
	}

	distinctCount := placeholderUnknown
	if rs, err := c.GetRecords(datasetID, RecordsQuery{
		Select: fmt.Sprintf("count(distinct %s) as distinct_count", fieldName),
		Limit:  defaultListLimit,
	}); err == nil && len(rs.Results) > 0 {
		distinctCount = rs.Results[0].Text("distinct_count", placeholderUnknown)
	}

	output := []string{
		fmt.Sprintf("# Analysis of %s (%s)", field.Text(fieldName, "label"), fieldName),
		fmt.Sprintf("\nDataset: %s (ID: %s)", dataset.Text(unknownDataset, "metas", "default", "title"), datasetID),
		"\n## Basic Statistics",
		fmt.Sprintf("- **Total Records**: %s", displayValue(totalRecords)),
		fmt.Sprintf("- **Distinct Values**: %s", distinctCount),
	}

	output = append(output,
		fmt.Sprintf("\n## Top %d Values by Frequency", len(values)),
		"| Value | Count | Percentage |",
		"| --- | --- | --- |",
	)
	for _, rec := range values {
		count := rec.Value("count", 0)
		output = append(output, fmt.Sprintf("| %s | %s | %s |",
			rec.Text(fieldName, placeholderNA), displayValue(count), percentage(count, totalRecords)))
	}
	return strings.Join(output, "\n")
}

// createAnalyzeDateFieldTool creates a tool analyzing a date field.
func createAnalyzeDateFieldTool(client *Client) mcp.Tool {
	type AnalyzeDateFieldParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
		// Name of the date field to analyze
		FieldName string `json:"field_name"`
	}

	return mcp.CreateTool(mcp.ToolDef[AnalyzeDateFieldParams]{
		Name:        "analyze_date_field",
		Description: "Analyze a date field in a dataset, including range, distribution by year/month",
		HandleFunc: func(ctx context.Context, params AnalyzeDateFieldParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			if params.FieldName == "" {
				return newToolCallErrorResult("Field name is required")
			}
			return newToolCallResult(analyzeDateFieldReport(client, params.DatasetID, params.FieldName))
		},
	})
}

func analyzeDateFieldReport(c *Client, datasetID, fieldName string) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error validating field: %v", err)
	}
	field := findField(dataset, fieldName)
	if field == nil {
		return fmt.Sprintf("Field '%s' not found in dataset '%s'.", fieldName, datasetID)
	}
	fieldType := field.Text("", "type")
	if !dateFieldTypes[fieldType] {
		return fmt.Sprintf("Field '%s' is not a date field (type: %s).", fieldName, fieldType)
	}

	stats, err := c.GetRecords(datasetID, RecordsQuery{
		Select: fmt.Sprintf("min(%s) as min_date, max(%s) as max_date, count(%s) as count",
			fieldName, fieldName, fieldName),
		Limit: defaultListLimit,
	})
	if err != nil {
		return fmt.Sprintf("Error computing field statistics: %v", err)
	}
	if len(stats.Results) == 0 {
		return fmt.Sprintf("Failed to compute statistics for field '%s'.", fieldName)
	}
	statValues := stats.Results[0]

	var yearsData []Record
	if rs, err := c.GetRecords(datasetID, RecordsQuery{
		Select:  fmt.Sprintf("year(%s) as year, count(*) as count", fieldName),
		GroupBy: fmt.Sprintf("year(%s)", fieldName),
		OrderBy: "year",
		Limit:   defaultListLimit,
	}); err == nil {
		yearsData = rs.Results
	}

	// Month breakdown is bounded to the most recent years so the number of
	// follow-up queries stays small. Partial results are kept when a later
	// year's lookup fails.
	type yearMonths struct {
		year   int64
		months []Record
	}
	var monthData []yearMonths
	if len(yearsData) > 0 {
		var years []int64
		for _, rec := range yearsData {
			if y, ok := rec.Number("year"); ok {
				years = append(years, int64(y))
			}
		}
		sort.Slice(years, func(i, j int) bool { return years[i] > years[j] })
		if len(years) > maxBreakdownYears {
			years = years[:maxBreakdownYears]
		}

		for _, year := range years {
			rs, err := c.GetRecords(datasetID, RecordsQuery{
				Select:  fmt.Sprintf("month(%s) as month, count(*) as count", fieldName),
				Where:   fmt.Sprintf("year(%s) = %d", fieldName, year),
				GroupBy: fmt.Sprintf("month(%s)", fieldName),
				OrderBy: "month",
				Limit:   defaultListLimit,
			})
			if err != nil {
				break
			}
			if len(rs.Results) > 0 {
				monthData = append(monthData, yearMonths{year: year, months: rs.Results})
			}
		}
	}

	output := []string{
		fmt.Sprintf("# Analysis of %s (%s)", field.Text(fieldName, "label"), fieldName),
		fmt.Sprintf("\nDataset: %s (ID: %s)", dataset.Text(unknownDataset, "metas", "default", "title"), datasetID),
		"\n## Basic Statistics",
		fmt.Sprintf("- **Count**: %s", statValues.Text("count", placeholderNA)),
		fmt.Sprintf("- **Earliest Date**: %s", statValues.Text("min_date", placeholderNA)),
		fmt.Sprintf("- **Latest Date**: %s", statValues.Text("max_date", placeholderNA)),
	}

	if len(yearsData) > 0 {
		output = append(output, "\n## Distribution by Year", "| Year | Count |", "| --- | --- |")
		for _, rec := range yearsData {
			output = append(output, fmt.Sprintf("| %s | %s |", rec.Text("year", placeholderNA), rec.Text("count", "0")))
		}
	}

	if len(monthData) > 0 {
		output = append(output, fmt.Sprintf("\n## Monthly Distribution (Last %d Years)", len(monthData)))
		for _, ym := range monthData {
			output = append(output, fmt.Sprintf("\n### %d", ym.year), "| Month | Count |", "| --- | --- |")
			for _, rec := range ym.months {
				name := placeholderNA
				if m, ok := rec.Number("month"); ok {
					name = monthName(int(m))
				}
				output = append(output, fmt.Sprintf("| %s | %s |", name, rec.Text("count", "0")))
			}
		}
	}
	return strings.Join(output, "\n")
}

// createGenerateDatasetStatisticsTool creates a tool producing per-field
// statistics for an entire dataset.
func createGenerateDatasetStatisticsTool(client *Client) mcp.Tool {
	type GenerateDatasetStatisticsParams struct {
		// Unique identifier for the dataset
		DatasetID string `json:"dataset_id"`
	}

	return mcp.CreateTool(mcp.ToolDef[GenerateDatasetStatisticsParams]{
		Name:        "generate_dataset_statistics",
		Description: "Generate comprehensive statistics for all fields in a dataset",
		HandleFunc: func(ctx context.Context, params GenerateDatasetStatisticsParams) *mcp.CallToolResult {
			if params.DatasetID == "" {
				return newToolCallErrorResult("Dataset identifier is required")
			}
			return newToolCallResult(generateDatasetStatisticsReport(client, params.DatasetID))
		},
	})
}

func generateDatasetStatisticsReport(c *Client, datasetID string) string {
	dataset, err := c.GetDataset(datasetID)
	if err != nil {
		return fmt.Sprintf("Error retrieving dataset information: %v", err)
	}
	if len(dataset) == 0 {
		return fmt.Sprintf("Dataset with ID '%s' not found.", datasetID)
	}

	fields := dataset.Docs("fields")
	if len(fields) == 0 {
		return fmt.Sprintf("No fields found for dataset '%s'.", datasetID)
	}

	type fieldInfo struct {
		name, label, typ string
	}
	var numeric, text, date, geo, other []fieldInfo
	for _, field := range fields {
		name := field.Text("", "name")
		fi := fieldInfo{
			name:  name,
			label: field.Text(name, "label"),
			typ:   field.Text("", "type"),
		}
		switch {
		case numericFieldTypes[fi.typ]:
			numeric = append(numeric, fi)
		case fi.typ == "text":
			text = append(text, fi)
		case dateFieldTypes[fi.typ]:
			date = append(date, fi)
		case geoFieldTypes[fi.typ]:
			geo = append(geo, fi)
		default:
			other = append(other, fi)
		}
	}

	output := []string{
		fmt.Sprintf("# Dataset Statistics: %s", dataset.Text(unknownDataset, "metas", "default", "title")),
		fmt.Sprintf("\nDataset ID: %s", datasetID),
		"\n## Field Count by Type",
		fmt.Sprintf("- **Numeric Fields**: %d", len(numeric)),
		fmt.Sprintf("- **Text Fields**: %d", len(text)),
		fmt.Sprintf("- **Date Fields**: %d", len(date)),
		fmt.Sprintf("- **Geographic Fields**: %d", len(geo)),
		fmt.Sprintf("- **Other Fields**: %d", len(other)),
		"\n## Detailed Field Information",
	}

	// Total record count is shared by the text, date, and geo sections; it is
	// fetched at most once. Failure leaves it at zero, which renders every
	// fill rate as N/A.
	var totalRecords any
	totalRecordCount := func() any {
		if totalRecords == nil {
			totalRecords = any(0)
			if rs, err := c.GetRecords(datasetID, RecordsQuery{Select: "count(*) as total", Limit: defaultListLimit}); err == nil && len(rs.Results) > 0 {
				totalRecords = rs.Results[0].Value("total", 0)
			}
		}
		return totalRecords
	}

	if len(numeric) > 0 {
		output = append(output, "\n### Numeric Fields")

		// One combined aggregation covers every numeric field.
		var selectClauses []string
		for _, fi := range numeric {
			selectClauses = append(selectClauses,
				fmt.Sprintf("min(%s) as min_%s", fi.name, fi.name),
				fmt.Sprintf("max(%s) as max_%s", fi.name, fi.name),
				fmt.Sprintf("avg(%s) as avg_%s", fi.name, fi.name),
				fmt.Sprintf("count(%s) as count_%s", fi.name, fi.name),
			)
		}
		var statValues Record
		if rs, err := c.GetRecords(datasetID, RecordsQuery{
			Select: strings.Join(selectClauses, ", "),
			Limit:  defaultListLimit,
		}); err == nil && len(rs.Results) > 0 {
			statValues = rs.Results[0]
		}

		output = append(output, "| Field | Type | Count | Min | Max | Average |", "| --- | --- | --- | --- | --- | --- |")
		for _, fi := range numeric {
			output = append(output, fmt.Sprintf("| %s (%s) | %s | %s | %s | %s | %s |",
				fi.label, fi.name, fi.typ,
				statValues.Text("count_"+fi.name, placeholderNA),
				statValues.Text("min_"+fi.name, placeholderNA),
				statValues.Text("max_"+fi.name, placeholderNA),
				statValues.Text("avg_"+fi.name, placeholderNA)))
		}
	}

	if len(text) > 0 {
		output = append(output, "\n### Text Fields", "| Field | Distinct Values | Fill Rate |", "| --- | --- | --- |")
		total := totalRecordCount()
		for _, fi := range text {
			distinct, fillRate := placeholderNA, placeholderNA
			if rs, err := c.GetRecords(datasetID, RecordsQuery{
				Select: fmt.Sprintf("count(distinct %s) as distinct_count, count(%s) as count", fi.name, fi.name),
				Limit:  defaultListLimit,
			}); err == nil && len(rs.Results) > 0 {
				distinct = rs.Results[0].Text("distinct_count", placeholderNA)
				fillRate = percentage(rs.Results[0].Value("count", 0), total)
			}
			output = append(output, fmt.Sprintf("| %s (%s) | %s | %s |", fi.label, fi.name, distinct, fillRate))
		}
	}

	if len(date) > 0 {
		output = append(output, "\n### Date Fields", "| Field | Earliest Date | Latest Date | Fill Rate |", "| --- | --- | --- | --- |")
		total := totalRecordCount()
		for _, fi := range date {
			minDate, maxDate, fillRate := placeholderNA, placeholderNA, placeholderNA
			if rs, err := c.GetRecords(datasetID, RecordsQuery{
				Select: fmt.Sprintf("min(%s) as min_date, max(%s) as max_date, count(%s) as count", fi.name, fi.name, fi.name),
				Limit:  defaultListLimit,
			}); err == nil && len(rs.Results) > 0 {
				minDate = rs.Results[0].Text("min_date", placeholderNA)
				maxDate = rs.Results[0].Text("max_date", placeholderNA)
				fillRate = percentage(rs.Results[0].Value("count", 0), total)
			}
			output = append(output, fmt.Sprintf("| %s (%s) | %s | %s | %s |", fi.label, fi.name, minDate, maxDate, fillRate))
		}
	}

	if len(geo) > 0 {
		output = append(output, "\n### Geographic Fields", "| Field | Type | Fill Rate |", "| --- | --- | --- |")
		total := totalRecordCount()
		for _, fi := range geo {
			fillRate := placeholderNA
			if rs, err := c.GetRecords(datasetID, RecordsQuery{
				Select: fmt.Sprintf("count(%s) as count", fi.name),
				Limit:  defaultListLimit,
			}); err == nil && len(rs.Results) > 0 {
				fillRate = percentage(rs.Results[0].Value("count", 0), total)
			}
			output = append(output, fmt.Sprintf("| %s (%s) | %s | %s |", fi.label, fi.name, fi.typ, fillRate))
		}
	}

	if len(other) > 0 {
		output = append(output, "\n### Other Fields", "| Field | Type |", "| --- | --- |")
		for _, fi := range other {
			output = append(output, fmt.Sprintf("| %s (%s) | %s |", fi.label, fi.name, fi.typ))
		}
	}
	return strings.Join(output, "\n")
}
