package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TeamKey is the short prefix a tracker team puts in front of its issue numbers,
// e.g. "ABC" in "ABC-123"
type TeamKey string

// Validate checks if the TeamKey is usable as an identifier prefix
func (k TeamKey) Validate() error {
	if k == "" {
		return goerr.New("team key cannot be empty")
	}
	if strings.ContainsAny(string(k), "- \t\r\n") {
		return goerr.New("team key must not contain hyphens or whitespace", goerr.V("key", k))
	}
	return nil
}

// Normalize returns the key in upper case
func (k TeamKey) Normalize() TeamKey {
	return TeamKey(strings.ToUpper(string(k)))
}

// String returns the string representation of TeamKey
func (k TeamKey) String() string {
	return string(k)
}
