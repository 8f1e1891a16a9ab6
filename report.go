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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Placeholder text used when expected keys are missing from remote payloads.
const (
	placeholderNA      = "N/A"
	placeholderUnknown = "Unknown"
	untitledDataset    = "Untitled Dataset"
	unknownDataset     = "Unknown Dataset"
	unknownPublisher   = "Unknown Publisher"
	unknownLicense     = "Unknown License"
	noDescription      = "No description available."
)

const (
	// Tables wider than this switch to a per-record key/value listing.
	maxTableColumns = 10
	// Facet values shown per facet before the omission note.
	maxFacetValues = 20
	// Years covered by the per-month date breakdown.
	maxBreakdownYears = 5
	// Records shown in a dataset summary.
	sampleRecordCount = 5
	// Default page size for record lookups issued by tools themselves.
	defaultListLimit = 10
)

// htmlReplacer strips the markup Opendatasoft embeds in description fields.
// Only these literal tags are replaced; anything else passes through.
var htmlReplacer = strings.NewReplacer("<p>", "", "</p>", " ", "<br>", " ")

func stripHTMLTags(s string) string {
	return htmlReplacer.Replace(s)
}

const maxDescriptionLen = 300

// truncateDescription caps a description at maxDescriptionLen characters.
// Truncation counts runes, not bytes, so multi-byte text is never cut mid
// character.
func truncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionLen {
		return s
	}
	return string([]rune(s)[:maxDescriptionLen-3]) + "..."
}

// tableLines renders records as a pipe-delimited markdown table. Columns
// follow the first record's key order; records missing a column render an
// empty cell.
func tableLines(records []Record) []string {
	if len(records) == 0 {
		return nil
	}
	headers := records[0].Keys()

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = "---"
	}
	lines := []string{
		"| " + strings.Join(headers, " | ") + " |",
		"| " + strings.Join(separator, " | ") + " |",
	}

	for _, rec := range records {
		cells := make([]string, len(headers))
		for i, key := range headers {
			cells[i] = rec.Text(key, "")
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return lines
}

// recordLines renders one record as an indented key/value listing.
func recordLines(rec Record) []string {
	lines := make([]string, 0, rec.Len())
	for _, key := range rec.Keys() {
		lines = append(lines, fmt.Sprintf("  %s: %s", key, rec.Text(key, "")))
	}
	return lines
}

// percentage renders part/total as a two-decimal percentage. When the total
// is absent, non-numeric, or not positive, it renders N/A instead of
// dividing.
func percentage(part, total any) string {
	p, okPart := toFloat(part)
	t, okTotal := toFloat(total)
	if !okPart || !okTotal || t <= 0 {
		return placeholderNA
	}
	return fmt.Sprintf("%.2f%%", p/t*100)
}

// histogramBucket is one value range of a distribution. Buckets are
// upper-exclusive except the final one, which includes its upper bound.
type histogramBucket struct {
	Lower float64
	Upper float64
}

const histogramBucketCount = 10

// histogramBuckets partitions [min, max] into ten equal-width buckets.
// Returns nil when the interval has zero or negative width.
func histogramBuckets(min, max float64) []histogramBucket {
	width := (max - min) / histogramBucketCount
	if width <= 0 {
		return nil
	}
	buckets := make([]histogramBucket, histogramBucketCount)
	for i := range buckets {
		buckets[i] = histogramBucket{
			Lower: min + float64(i)*width,
			Upper: min + float64(i+1)*width,
		}
	}
	// Pin the final upper bound to max; min + 10*width can round below it.
	buckets[histogramBucketCount-1].Upper = max
	return buckets
}

// rangeWhere builds the ODSQL filter counting values inside a bucket. The
// final bucket includes max so every in-range value lands in exactly one
// bucket.
func rangeWhere(field string, b histogramBucket, last bool) string {
	op := "<"
	if last {
		op = "<="
	}
	return fmt.Sprintf("%s >= %s AND %s %s %s",
		field, formatBound(b.Lower), field, op, formatBound(b.Upper))
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// sortedFacetValues orders facet values by descending occurrence count. The
// sort is stable so equal counts keep their upstream order.
func sortedFacetValues(values []FacetValue) []FacetValue {
	sorted := make([]FacetValue, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthName(m int) string {
	if m < 1 || m > len(monthNames) {
		return placeholderNA
	}
	return monthNames[m-1]
}

// datasetTitle fetches the dataset title for a report header line. Lookup
// failure degrades to a placeholder; the report itself is not aborted.
func datasetTitle(c *Client, datasetID string) string {
	doc, err := c.GetDataset(datasetID)
	if err != nil {
		return unknownDataset
	}
	return doc.Text(unknownDataset, "metas", "default", "title")
}

// firstTheme returns the first entry of the theme metadata list, which is
// what reports display.
func firstTheme(metas Document) string {
	themes := metas.List("theme")
	if len(themes) == 0 {
		return ""
	}
	s, _ := themes[0].(string)
	return s
}
