package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Returned by tracker fetches wrapped in the cache so that absent values are
	// not memoized
	ErrIssueNotFound   = errors.New("issue not found")
	ErrCreatorNotFound = errors.New("issue creator not found")
	ErrStatusNotFound  = errors.New("issue status not found")

	ErrNoReplier = errors.New("chat replier is not configured")
)

// Context keys for error values
const (
	IdentifierKey = "identifier"
	ChannelIDKey  = "channel_id"
)
