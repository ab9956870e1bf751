package money

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a numeric form field that tolerates the empty string a
// form emits mid-edit. An empty value counts as zero for every
// calculation but round-trips as empty so the form does not show a
// spurious 0 before the user commits the field.
type Number struct {
	raw string
	val float64
}

// NumberOf wraps a concrete numeric value.
func NumberOf(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64), val: v}
}

// Float64 returns the numeric value, zero when the field is empty.
func (n Number) Float64() float64 { return n.val }

// IsEmpty reports whether the field is transiently empty.
func (n Number) IsEmpty() bool { return n.raw == "" }

// String returns the original token, which is empty for an empty field.
func (n Number) String() string { return n.raw }

// UnmarshalJSON accepts a JSON number, a quoted number, an empty
// string, or null. Anything non-numeric parses as empty.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*n = Number{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = Number{}
		return nil
	}
	*n = Number{raw: s, val: v}
	return nil
}

// MarshalJSON emits the numeric value, or an empty string for an empty
// field so the form can render it blank.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte(`""`), nil
	}
	return json.Marshal(n.val)
}
