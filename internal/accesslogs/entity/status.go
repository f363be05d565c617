package entity

import (
	"maps"
	"slices"
	"strings"
)

// StatusCode is the numeric token that follows `HTTP/1.1"` in an access-log
// line. It is an opaque label: "007" and "7" are different codes.
type StatusCode string

// Tally accumulates counts during a single aggregation run. It is owned by
// that run and is frozen into a FrequencyMap before anything else sees it.
type Tally map[StatusCode]int

// Add increments the count for code.
func (t Tally) Add(code StatusCode) {
	t[code]++
}

// Freeze returns an immutable FrequencyMap with a deterministic label order.
func (t Tally) Freeze() FrequencyMap {
	labels := slices.Collect(maps.Keys(t))
	slices.SortFunc(labels, compareCodes)

	values := make([]int, len(labels))
	for i, code := range labels {
		values[i] = t[code]
	}

	return FrequencyMap{labels: labels, values: values}
}

// compareCodes orders by length, then lexically. For plain digit strings this
// is numeric order without parsing the label.
func compareCodes(a, b StatusCode) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(string(a), string(b))
}

// FrequencyMap maps status codes to occurrence counts. Labels()[i] pairs with
// Values()[i]. A FrequencyMap is never mutated once built.
type FrequencyMap struct {
	labels []StatusCode
	values []int
}

// NewFrequencyMap builds a FrequencyMap from a plain map.
func NewFrequencyMap(counts map[StatusCode]int) FrequencyMap {
	t := make(Tally, len(counts))
	for code, n := range counts {
		if n > 0 {
			t[code] = n
		}
	}
	return t.Freeze()
}

// Len returns the number of distinct codes.
func (f FrequencyMap) Len() int {
	return len(f.labels)
}

// Labels returns a copy of the ordered codes.
func (f FrequencyMap) Labels() []StatusCode {
	return slices.Clone(f.labels)
}

// Values returns a copy of the counts, positionally matching Labels.
func (f FrequencyMap) Values() []int {
	return slices.Clone(f.values)
}

// Count returns the count for code, zero when absent.
func (f FrequencyMap) Count(code StatusCode) int {
	for i, label := range f.labels {
		if label == code {
			return f.values[i]
		}
	}
	return 0
}

// Total returns the sum of all counts.
func (f FrequencyMap) Total() int {
	total := 0
	for _, v := range f.values {
		total += v
	}
	return total
}

// Map returns a copy as a plain map.
func (f FrequencyMap) Map() map[StatusCode]int {
	m := make(map[StatusCode]int, len(f.labels))
	for i, label := range f.labels {
		m[label] = f.values[i]
	}
	return m
}
