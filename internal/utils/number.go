package utils

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Number is a float64 that also accepts JSON numeric strings ("4.5").
// Upstream clients send ratings and charges both ways; anything that does not
// parse as a number is a bind error, not a silent zero.
type Number float64

var errNotNumeric = errors.New("value is not numeric")

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if raw == "" || raw == "null" {
		return errNotNumeric
	}

	if raw[0] == '"' {
		var s string

		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)

		if err != nil {
			return errNotNumeric
		}

		*n = Number(f)
		return nil
	}

	var f float64

	if err := json.Unmarshal(data, &f); err != nil {
		return errNotNumeric
	}

	*n = Number(f)
	return nil
}

func (n Number) Float64() float64 {
	return float64(n)
}
