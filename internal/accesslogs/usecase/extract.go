package usecase

import (
	"regexp"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

// statusCodePattern is the only log shape recognized. Other HTTP versions and
// lowercase variants are not matched.
var statusCodePattern = regexp.MustCompile(`HTTP/1\.1" (\d+)`)

// ExtractStatusCode returns the status code of an access-log line, or false
// when the line does not carry one.
func ExtractStatusCode(line string) (entity.StatusCode, bool) {
	m := statusCodePattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}

	return entity.StatusCode(m[1]), true
}
