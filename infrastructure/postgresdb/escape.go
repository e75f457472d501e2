package postgresdb

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// QuoteIdentifier validates and double-quotes a column or table name. A
// single "schema.table" qualifier and a trailing alias ("tasks t") are allowed.
func QuoteIdentifier(name string) (string, error) {
	parts := strings.Split(name, " ")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many parts): %q", name)
	}

	quoted, err := quoteQualified(parts[0])
	if err != nil {
		return "", err
	}

	if len(parts) == 2 {
		if !identifierPattern.MatchString(parts[1]) {
			return "", fmt.Errorf("invalid identifier alias: %q", parts[1])
		}
		quoted += ` "` + parts[1] + `"`
	}

	return quoted, nil
}

func quoteQualified(name string) (string, error) {
	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many segments): %q", name)
	}

	for i, seg := range segments {
		if !identifierPattern.MatchString(seg) {
			return "", fmt.Errorf("invalid identifier segment at position %d: %q", i, seg)
		}
		segments[i] = `"` + seg + `"`
	}

	return strings.Join(segments, "."), nil
}
