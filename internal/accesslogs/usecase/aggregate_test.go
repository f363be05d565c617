package usecase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

func TestAggregateScenario(t *testing.T) {
	text := "GET / HTTP/1.1\" 200 512\nGET / HTTP/1.1\" 404 0\nGET / HTTP/1.1\" 200 0\n"

	result := Aggregate(text)

	want := map[entity.StatusCode]int{"200": 2, "404": 1}
	if got := result.Frequencies.Map(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected frequencies: %v", got)
	}
	if result.TotalLines != 3 || result.Matched != 3 || result.Skipped != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	result := Aggregate("")

	if result.Frequencies.Len() != 0 {
		t.Fatalf("expected empty map, got %v", result.Frequencies.Map())
	}
	if result.TotalLines != 0 || result.Matched != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result)
	}
}

// Unmatched lines are skipped silently. The Skipped count is the only signal
// that a log format is not recognized, so it is asserted here.
func TestAggregateSkipsUnmatchedLines(t *testing.T) {
	text := strings.Join([]string{
		`10.0.0.1 - - "GET /a HTTP/1.1" 200 5`,
		`garbage`,
		``,
		`10.0.0.1 - - "GET /b HTTP/2.0" 200 5`,
		`10.0.0.1 - - "GET /c HTTP/1.1" 503 0`,
	}, "\n")

	result := Aggregate(text)

	if got := result.Frequencies.Map(); !reflect.DeepEqual(got, map[entity.StatusCode]int{"200": 1, "503": 1}) {
		t.Fatalf("unexpected frequencies: %v", got)
	}
	if result.TotalLines != 5 {
		t.Fatalf("expected 5 lines, got %d", result.TotalLines)
	}
	if result.Matched != 2 || result.Skipped != 3 {
		t.Fatalf("expected matched=2 skipped=3, got %+v", result)
	}
}

func TestAggregateNormalizesCRLF(t *testing.T) {
	text := "\"GET / HTTP/1.1\" 200 1\r\n\"GET / HTTP/1.1\" 200\r\n\"GET / HTTP/1.1\" 404\r\n"

	result := Aggregate(text)

	for _, label := range result.Frequencies.Labels() {
		if strings.ContainsAny(string(label), "\r\n") {
			t.Fatalf("label carries control characters: %q", label)
		}
	}
	if got := result.Frequencies.Map(); !reflect.DeepEqual(got, map[entity.StatusCode]int{"200": 2, "404": 1}) {
		t.Fatalf("unexpected frequencies: %v", got)
	}
	if result.TotalLines != 3 {
		t.Fatalf("expected 3 lines, got %d", result.TotalLines)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	text := "x HTTP/1.1\" 500 0\nx HTTP/1.1\" 200 0\nx HTTP/1.1\" 302 0\nx HTTP/1.1\" 200 0\n"

	first := Aggregate(text)
	second := Aggregate(text)

	if !reflect.DeepEqual(first.Frequencies.Labels(), second.Frequencies.Labels()) {
		t.Fatalf("labels differ: %v vs %v", first.Frequencies.Labels(), second.Frequencies.Labels())
	}
	if !reflect.DeepEqual(first.Frequencies.Values(), second.Frequencies.Values()) {
		t.Fatalf("values differ: %v vs %v", first.Frequencies.Values(), second.Frequencies.Values())
	}
}

func TestAggregateSumMatchesMatchedLines(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"no match at all",
		"a HTTP/1.1\" 200\nb\nc HTTP/1.1\" 200\n\n\n",
		"a HTTP/1.1\" 1\na HTTP/1.1\" 22\na HTTP/1.1\" 333\na HTTP/1.1\" 4444",
	}

	for _, text := range inputs {
		result := Aggregate(text)

		matched := 0
		lines := 0
		if text != "" {
			for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
				lines++
				if _, ok := ExtractStatusCode(line); ok {
					matched++
				}
			}
		}

		if got := result.Frequencies.Total(); got != matched {
			t.Fatalf("%q: expected sum %d, got %d", text, matched, got)
		}
		if result.Matched != matched || result.TotalLines != lines {
			t.Fatalf("%q: unexpected diagnostics %+v (lines=%d matched=%d)", text, result, lines, matched)
		}
		if result.Frequencies.Total() > result.TotalLines {
			t.Fatalf("%q: sum exceeds line count", text)
		}
	}
}
