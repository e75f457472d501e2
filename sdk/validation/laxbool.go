package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrNotBool is returned for values that do not read as a boolean.
var ErrNotBool = errors.New("input should be a valid boolean")

// ParseLaxBool reads a JSON boolean, the numbers 0 and 1, or one of the
// strings 0/1, t/f, y/n, true/false, yes/no, on/off in any case.
func ParseLaxBool(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		switch n {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, ErrNotBool
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(s) {
		case "1", "t", "y", "true", "yes", "on":
			return true, nil
		case "0", "f", "n", "false", "no", "off":
			return false, nil
		}
	}

	return false, ErrNotBool
}

// NormalizeBools rewrites the named top level keys of a JSON object to real
// booleans. Absent keys and explicit nulls are left as they are.
func NormalizeBools(data []byte, keys ...string) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewFieldError(BodyField, err)
	}

	changed := false
	for _, key := range keys {
		raw, ok := doc[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}

		b, err := ParseLaxBool(raw)
		if err != nil {
			return nil, NewFieldError(key, err)
		}
		doc[key] = json.RawMessage(strconv.FormatBool(b))
		changed = true
	}

	if !changed {
		return data, nil
	}
	return json.Marshal(doc)
}
