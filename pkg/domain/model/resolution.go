package model

import "github.com/secmon-lab/linkrelay/pkg/domain/types"

// SkipReason explains why a candidate identifier produced no summary
type SkipReason string

const (
	SkipNone               SkipReason = ""
	SkipFetchIssueFailed   SkipReason = "fetch_issue_failed"
	SkipIssueNotFound      SkipReason = "issue_not_found"
	SkipMissingCreator     SkipReason = "missing_creator"
	SkipFetchCreatorFailed SkipReason = "fetch_creator_failed"
	SkipMissingStatus      SkipReason = "missing_status"
	SkipFetchStatusFailed  SkipReason = "fetch_status_failed"
)

// Resolution is the outcome of resolving one candidate identifier. Either Issue,
// Creator and Status are all set, or Reason says why the candidate was skipped.
type Resolution struct {
	Identifier types.IssueIdentifier
	Issue      *Issue
	Creator    *Creator
	Status     *Status
	Reason     SkipReason
	Err        error
}

// Resolved reports whether the candidate can be rendered
func (r *Resolution) Resolved() bool {
	return r != nil && r.Reason == SkipNone && r.Issue != nil && r.Creator != nil && r.Status != nil
}

// Skip builds a skipped resolution
func Skip(id types.IssueIdentifier, reason SkipReason, err error) *Resolution {
	return &Resolution{
		Identifier: id,
		Reason:     reason,
		Err:        err,
	}
}
