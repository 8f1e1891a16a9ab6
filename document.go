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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Document is a decoded JSON object with no assumed schema. Remote payload
// shapes vary per dataset, so every read goes through an accessor that takes
// an explicit default.
type Document map[string]any

func (d Document) lookup(path ...string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Text returns the value at path rendered for display, or def when the path
// is absent or null.
func (d Document) Text(def string, path ...string) string {
	v, ok := d.lookup(path...)
	if !ok || v == nil {
		return def
	}
	return displayValue(v)
}

// Doc returns the nested object at path, or nil when absent. Accessors on a
// nil Document resolve to their defaults.
func (d Document) Doc(path ...string) Document {
	v, ok := d.lookup(path...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return Document(m)
}

// List returns the array at path, or nil when absent.
func (d Document) List(path ...string) []any {
	v, ok := d.lookup(path...)
	if !ok {
		return nil
	}
	l, _ := v.([]any)
	return l
}

// Docs returns the array of objects at path, skipping non-object entries.
func (d Document) Docs(path ...string) []Document {
	list := d.List(path...)
	docs := make([]Document, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			docs = append(docs, Document(m))
		}
	}
	return docs
}

// Record is a single dataset record. JSON object key order is preserved so
// tabular output uses the upstream column order.
type Record struct {
	keys   []string
	values map[string]any
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	r.keys = nil
	r.values = make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key token %v", keyTok)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return err
		}
		if _, dup := r.values[key]; !dup {
			r.keys = append(r.keys, key)
		}
		r.values[key] = val
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}

// Keys returns the field names in upstream order.
func (r Record) Keys() []string { return r.keys }

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.keys) }

// Value returns the raw value for key, or def when the key is absent.
func (r Record) Value(key string, def any) any {
	if v, ok := r.values[key]; ok {
		return v
	}
	return def
}

// Text returns the value for key rendered for display, or def when the key is
// absent or null.
func (r Record) Text(key, def string) string {
	v, ok := r.values[key]
	if !ok || v == nil {
		return def
	}
	return displayValue(v)
}

// Number returns the value for key as a float64, when it is numeric.
func (r Record) Number(key string) (float64, bool) {
	v, ok := r.values[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// displayValue renders a decoded JSON value as a single-line string. Nested
// objects and arrays are serialized to compact JSON.
func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		// Integral values print without a decimal point or exponent, full
		// digits even past the int64-exact range.
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			if math.Abs(t) < 1e15 {
				return strconv.FormatInt(int64(t), 10)
			}
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return compactJSON(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// toFloat converts the numeric representations produced by JSON decoding.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
