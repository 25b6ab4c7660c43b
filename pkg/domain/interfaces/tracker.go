package interfaces

import (
	"context"

	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
)

// IssueTracker is the read-only view of the external issue tracker
type IssueTracker interface {
	// ListTeamKeys returns the key of every team visible to the credential
	ListTeamKeys(ctx context.Context) ([]types.TeamKey, error)

	// GetIssue returns the issue for an identifier such as "ABC-123".
	// It returns (nil, nil) when the tracker has no such issue.
	GetIssue(ctx context.Context, id types.IssueIdentifier) (*model.Issue, error)

	// GetCreator returns the user with the given tracker user ID
	GetCreator(ctx context.Context, userID string) (*model.Creator, error)

	// GetStatus returns the workflow state with the given tracker state ID
	GetStatus(ctx context.Context, stateID string) (*model.Status, error)
}
