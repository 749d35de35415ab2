package paper

import (
	"encoding/json"
	"fmt"
)

// StringList is an order-irrelevant set of strings (keywords, categories).
// A bare JSON string decodes as a one-element list, and null decodes as an
// empty list, matching what older storage files contain.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*l = StringList{}
		} else {
			*l = StringList{s}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	*l = list
	return nil
}

// Contains reports whether the list holds exactly the given value.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the list holds any of the given values.
func (l StringList) ContainsAny(values []string) bool {
	for _, v := range values {
		if l.Contains(v) {
			return true
		}
	}
	return false
}
