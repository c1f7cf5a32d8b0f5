// Package record holds the rows returned by the record service and the
// ordering helpers used to recover display sequence from them.
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// OrderField is the field every section sorts by.
const OrderField = "Order"

// Fields maps a remote field name to its decoded JSON value: string, float64,
// bool, []any or map[string]any.
type Fields map[string]any

type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// Order returns the numeric Order field and whether it is defined.
func (r Record) Order() (float64, bool) {
	return Number(r.Fields[OrderField])
}

// Get returns a field value, nil when absent.
func (r Record) Get(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// OrderedItem pairs a record's Order with one of its field values.
type OrderedItem[T any] struct {
	Order float64
	Value T
}

// CollectAndSortKeyed pairs Order with field for every record that has both a
// numeric Order and a truthy value, sorted ascending by order. Ties keep
// source order.
func CollectAndSortKeyed(records []Record, field string) []OrderedItem[any] {
	items := make([]OrderedItem[any], 0, len(records))
	for _, r := range records {
		order, ok := r.Order()
		if !ok {
			continue
		}
		v := r.Get(field)
		if !Truthy(v) {
			continue
		}
		items = append(items, OrderedItem[any]{Order: order, Value: v})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items
}

// CollectAndSortValues is CollectAndSortKeyed without the order keys.
func CollectAndSortValues(records []Record, field string) []any {
	items := CollectAndSortKeyed(records, field)
	values := make([]any, len(items))
	for i, it := range items {
		values[i] = it.Value
	}
	return values
}

// CollectAndSortStrings is CollectAndSortValues rendered through Text.
func CollectAndSortStrings(records []Record, field string) []string {
	values := CollectAndSortValues(records, field)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Text(v)
	}
	return out
}

// SortByOrder returns a stably sorted copy of records. Records without an
// Order go last.
func SortByOrder(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := out[i].Order()
		oj, jok := out[j].Order()
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

// Truthy follows JavaScript truthiness so that empty strings, zero and false
// are treated as missing values.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// Number coerces numeric JSON values and numeric strings.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text renders a field value for display. Arrays are joined with ", ".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := Text(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	case map[string]any:
		if a, ok := attachmentFrom(t); ok {
			return a.Filename
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Strings flattens a value that may be a single item or an array.
func Strings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if Truthy(e) {
				out = append(out, Text(e))
			}
		}
		return out
	case []string:
		return t
	default:
		if !Truthy(t) {
			return nil
		}
		return []string{Text(t)}
	}
}
