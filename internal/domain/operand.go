package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ParseOperand coerces a raw JSON operand to float64. A missing operand is 0.
// Numbers, numeric strings and booleans are accepted; null, objects, arrays and
// non-numeric strings fail with ErrMalformedInput.
func ParseOperand(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, MalformedInput("could not convert %s to a number", raw)
		}
		return parseNumericString(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return 0, MalformedInput("could not convert %s to a number", raw)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	case 'n':
		return 0, MalformedInput("operand must be a number, not null")
	case '{', '[':
		return 0, MalformedInput("could not convert %s to a number", raw)
	}

	// Numbers go through ParseFloat directly so that literals beyond float64
	// range surface as malformed input instead of a decode error.
	return parseNumericString(string(raw))
}

func parseNumericString(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, MalformedInput("could not convert %q to a number", s)
	}
	return v, nil
}
