// Package orchestrate wires media/cover, media/image, media/audio,
// payload, and message together into the fluent hide/unveil/unveil-raw
// builders consumers actually call. Grounded on
// stegano-core/src/api/{hide,unveil,unveil_raw,shared/password}.rs.
package orchestrate

import "strings"

// Password holds an optional encryption password, printing masked so it
// never leaks into logs.
type Password struct {
	value string
	set   bool
}

// NoPassword is the zero value: no encryption.
var NoPassword = Password{}

// NewPassword wraps password as a set Password.
func NewPassword(password string) Password {
	return Password{value: password, set: true}
}

// Get returns the password and whether one was set.
func (p Password) Get() (string, bool) {
	return p.value, p.set
}

// String implements fmt.Stringer, masking each character of the password
// with '*' (only its length shows).
func (p Password) String() string {
	if !p.set {
		return "Password(None)"
	}
	return "Password(" + strings.Repeat("*", len(p.value)) + ")"
}
