package usecase

import (
	"strings"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

// Aggregate tallies status codes over every line of text.
//
// Lines without a status code are skipped, never treated as errors. The text
// is split on "\n" and a trailing "\r" is dropped from each line so CRLF logs
// do not produce keys with control characters. A final newline does not start
// an extra line.
func Aggregate(text string) entity.AggregateResult {
	tally := entity.Tally{}
	result := entity.AggregateResult{}

	if text == "" {
		result.Frequencies = tally.Freeze()
		return result
	}

	text = strings.TrimSuffix(text, "\n")
	for line := range strings.SplitSeq(text, "\n") {
		result.TotalLines++

		code, ok := ExtractStatusCode(strings.TrimSuffix(line, "\r"))
		if !ok {
			result.Skipped++
			continue
		}

		result.Matched++
		tally.Add(code)
	}

	result.Frequencies = tally.Freeze()

	return result
}
