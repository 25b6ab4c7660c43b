package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// IssueIdentifier is a human readable issue reference such as "ABC-123". Values
// produced by the scanner are always upper case.
type IssueIdentifier string

// NewIssueIdentifier normalizes a raw match into an IssueIdentifier
func NewIssueIdentifier(raw string) IssueIdentifier {
	return IssueIdentifier(strings.ToUpper(raw))
}

// Validate checks the "<KEY>-<digits>" shape
func (id IssueIdentifier) Validate() error {
	key, number, ok := strings.Cut(string(id), "-")
	if !ok || key == "" || number == "" {
		return goerr.New("issue identifier must be <KEY>-<number>", goerr.V("identifier", id))
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return goerr.New("issue number must be digits", goerr.V("identifier", id))
		}
	}
	return nil
}

// TeamKey returns the prefix part of the identifier
func (id IssueIdentifier) TeamKey() TeamKey {
	key, _, _ := strings.Cut(string(id), "-")
	return TeamKey(key)
}

// String returns the string representation of IssueIdentifier
func (id IssueIdentifier) String() string {
	return string(id)
}
