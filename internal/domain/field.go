package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a scalar feed value kept in its string form. Feeds mix strings,
// numbers and booleans under the same key, so all of them are accepted;
// objects and arrays in a scalar position decode to the empty field.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = Field(s)
	case '{', '[':
		*f = ""
	default:
		// numbers and booleans keep their literal text
		*f = Field(data)
	}

	return nil
}

func (f Field) String() string {
	return string(f)
}

// Blank reports whether the field holds nothing but whitespace.
func (f Field) Blank() bool {
	return strings.TrimSpace(string(f)) == ""
}
