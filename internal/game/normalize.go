package game

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NormalizeAnswer converts the various answer representations clients send
// into a zero-based option index. Accepted forms: a raw index (2), a digit
// string ("2"), or a single option letter ("C"/"c" -> 2). Both the HTTP
// endpoint and the websocket path must go through this function so the two
// never disagree on what counts as a valid answer.
func NormalizeAnswer(raw interface{}, optionCount int) (int, error) {
	idx := -1

	switch v := raw.(type) {
	case int:
		idx = v
	case float64:
		idx = int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, ErrInvalidAnswer
		}
		idx = int(n)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, ErrInvalidAnswer
		}
		if n, err := strconv.Atoi(s); err == nil {
			idx = n
			break
		}
		if len(s) == 1 {
			c := s[0]
			switch {
			case c >= 'A' && c <= 'Z':
				idx = int(c - 'A')
			case c >= 'a' && c <= 'z':
				idx = int(c - 'a')
			}
		}
	}

	if idx < 0 || idx >= optionCount {
		return 0, ErrInvalidAnswer
	}
	return idx, nil
}
