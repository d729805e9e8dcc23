package models

// YN is a Y/N flag as exposed by the API (use_yn=Y).
type YN string

const (
	Yes YN = "Y"
	No  YN = "N"
)

// Bool reports whether the flag is set.
func (f YN) Bool() bool { return f == Yes }

// Valid reports whether f is Y or N.
func (f YN) Valid() bool { return f == Yes || f == No }

// FromBool converts a bool to a flag.
func FromBool(b bool) YN {
	if b {
		return Yes
	}
	return No
}
