package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecimalText is a money value carried as its exact text. It accepts either
// a JSON string ("12.50") or a bare JSON number (12.50) and keeps the digits
// as written.
type DecimalText string

// UnmarshalJSON implements json.Unmarshaler
func (d *DecimalText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DecimalText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decimal must be a string or number: %w", err)
	}
	*d = DecimalText(n.String())
	return nil
}

// MarshalJSON always writes the value as a JSON string
func (d DecimalText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// String returns the raw text
func (d DecimalText) String() string {
	return string(d)
}
