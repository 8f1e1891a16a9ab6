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
	"math"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genMaybeIdentifier generates either an empty string (clause absent) or a
// plausible clause fragment.
func genMaybeIdentifier() gopter.Gen {
	return gen.OneGenOf(gen.Const(""), gen.Identifier())
}

func TestListQueryWhereOrderingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("clauses join in search, where, publisher, theme order", prop.ForAll(
		func(search, where, publisher, theme string) bool {
			q := ListQuery{Search: search, Where: where, Publisher: publisher, Theme: theme, Limit: 10}
			got := q.Values().Get("where")

			var clauses []string
			if search != "" {
				clauses = append(clauses, `"`+search+`"`)
			}
			if where != "" {
				clauses = append(clauses, where)
			}
			if publisher != "" {
				clauses = append(clauses, `publisher="`+publisher+`"`)
			}
			if theme != "" {
				clauses = append(clauses, `theme="`+theme+`"`)
			}
			return got == strings.Join(clauses, " AND ")
		},
		genMaybeIdentifier(), genMaybeIdentifier(), genMaybeIdentifier(), genMaybeIdentifier(),
	))

	properties.Property("limit and offset are always present", prop.ForAll(
		func(limit, offset int) bool {
			v := ListQuery{Limit: limit, Offset: offset}.Values()
			return v.Has("limit") && v.Has("offset")
		},
		gen.IntRange(0, 10000), gen.IntRange(0, 10000),
	))

	properties.Property("identical queries encode identically", prop.ForAll(
		func(search, publisher string, limit int) bool {
			q := ListQuery{Search: search, Publisher: publisher, Limit: limit}
			return q.Values().Encode() == q.Values().Encode()
		},
		genMaybeIdentifier(), genMaybeIdentifier(), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func TestHistogramBucketsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	genRange := gopter.CombineGens(
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(1e-3, 1e6),
	)

	properties.Property("ten adjacent buckets spanning min to max", prop.ForAll(
		func(vals []interface{}) bool {
			min := vals[0].(float64)
			max := min + vals[1].(float64)

			buckets := histogramBuckets(min, max)
			if len(buckets) != histogramBucketCount {
				return false
			}
			if buckets[0].Lower != min {
				return false
			}
			if buckets[len(buckets)-1].Upper != max {
				return false
			}
			for i := 0; i < len(buckets)-1; i++ {
				if buckets[i].Upper != buckets[i+1].Lower {
					return false
				}
			}
			return true
		},
		genRange,
	))

	properties.Property("every in-range value lands in exactly one bucket", prop.ForAll(
		func(vals []interface{}, frac float64) bool {
			min := vals[0].(float64)
			max := min + vals[1].(float64)
			v := min + frac*(max-min)
			v = math.Max(min, math.Min(max, v))

			buckets := histogramBuckets(min, max)
			matches := 0
			for i, b := range buckets {
				if bucketContains(b, v, i == len(buckets)-1) {
					matches++
				}
			}
			return matches == 1
		},
		genRange, gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}

func TestTruncateDescriptionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("output never exceeds the limit and keeps the prefix", prop.ForAll(
		func(s string) bool {
			got := truncateDescription(s)
			if utf8.RuneCountInString(got) > maxDescriptionLen {
				return false
			}
			if utf8.RuneCountInString(s) <= maxDescriptionLen {
				return got == s
			}
			return got == string([]rune(s)[:maxDescriptionLen-3])+"..."
		},
		gen.UnicodeString(unicode.Latin),
	))

	properties.Property("multi-byte input never yields invalid UTF-8", prop.ForAll(
		func(s string) bool {
			return utf8.ValidString(truncateDescription(s))
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
