package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
	"github.com/secmon-lab/linkrelay/pkg/utils/cache"
)

// Resolve looks up the issue, its creator and its status for one candidate. Any
// failure becomes a skipped resolution carrying the reason; nothing is returned as an
// error so sibling candidates keep going.
func (uc *RelayUseCase) Resolve(ctx context.Context, id types.IssueIdentifier) *model.Resolution {
	issue, err := cache.Do(ctx, uc.cache, cache.Key("issue", id.String()), cache.MaxAge(uc.issueMaxAge),
		func(ctx context.Context) (*model.Issue, error) {
			issue, err := uc.tracker.GetIssue(ctx, id)
			if err != nil {
				return nil, err
			}
			if issue == nil {
				return nil, goerr.Wrap(ErrIssueNotFound, "tracker has no such issue", goerr.V(IdentifierKey, id))
			}
			return issue, nil
		})
	if err != nil {
		if errors.Is(err, ErrIssueNotFound) {
			return model.Skip(id, model.SkipIssueNotFound, err)
		}
		return model.Skip(id, model.SkipFetchIssueFailed, err)
	}

	if issue.CreatorID == "" {
		return model.Skip(id, model.SkipMissingCreator, nil)
	}
	creator, err := cache.Do(ctx, uc.cache, cache.Key("issue", id.String(), "creator"), cache.Forever,
		func(ctx context.Context) (*model.Creator, error) {
			creator, err := uc.tracker.GetCreator(ctx, issue.CreatorID)
			if err != nil {
				return nil, err
			}
			if creator == nil {
				return nil, goerr.Wrap(ErrCreatorNotFound, "tracker has no such user",
					goerr.V(IdentifierKey, id), goerr.V("user_id", issue.CreatorID))
			}
			return creator, nil
		})
	if err != nil {
		if errors.Is(err, ErrCreatorNotFound) {
			return model.Skip(id, model.SkipMissingCreator, err)
		}
		return model.Skip(id, model.SkipFetchCreatorFailed, err)
	}

	if issue.StateID == "" {
		return model.Skip(id, model.SkipMissingStatus, nil)
	}
	status, err := cache.Do(ctx, uc.cache, cache.Key("issue", id.String(), "state"), cache.Forever,
		func(ctx context.Context) (*model.Status, error) {
			status, err := uc.tracker.GetStatus(ctx, issue.StateID)
			if err != nil {
				return nil, err
			}
			if status == nil {
				return nil, goerr.Wrap(ErrStatusNotFound, "tracker has no such workflow state",
					goerr.V(IdentifierKey, id), goerr.V("state_id", issue.StateID))
			}
			return status, nil
		})
	if err != nil {
		if errors.Is(err, ErrStatusNotFound) {
			return model.Skip(id, model.SkipMissingStatus, err)
		}
		return model.Skip(id, model.SkipFetchStatusFailed, err)
	}

	return &model.Resolution{
		Identifier: id,
		Issue:      issue,
		Creator:    creator,
		Status:     status,
	}
}
