package handlers

import "encoding/json"

// flexString accepts a JSON string or a bare JSON number and normalizes it
// to its string form. Phone numbers arrive both ways from clients, and the
// store keys OTP and reset lookups on the string form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
