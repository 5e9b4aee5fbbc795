package util

// Tri is a three-valued flag: unset, false or true.
//
// The zero value is TriUnset so `json:",omitempty"` drops unknown values
// while false and true are both emitted.
type Tri int8

const (
	TriUnset Tri = iota
	TriFalse
	TriTrue
)

// TriOf converts a bool to a set Tri.
func TriOf(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

// IsSet reports whether t carries a value.
func (t Tri) IsSet() bool { return t != TriUnset }

// Bool returns the boolean value; unset reads as false.
func (t Tri) Bool() bool { return t == TriTrue }

// Or returns t when set, otherwise fallback.
func (t Tri) Or(fallback Tri) Tri {
	if t.IsSet() {
		return t
	}
	return fallback
}

func (t Tri) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unset"
	}
}

// MarshalJSON encodes set values as booleans and unset as null.
func (t Tri) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false and null.
func (t *Tri) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*t = TriTrue
	case "false":
		*t = TriFalse
	default:
		*t = TriUnset
	}
	return nil
}
