package usecase_test

import (
	"context"
	"sync"

	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
)

// ----- fake IssueTracker -----

type fakeTracker struct {
	mu        sync.Mutex
	keys      []types.TeamKey
	issues    map[types.IssueIdentifier]*model.Issue
	creators  map[string]*model.Creator
	statuses  map[string]*model.Status
	issueErrs map[types.IssueIdentifier]error

	issueCalls   map[types.IssueIdentifier]int
	creatorCalls int
	statusCalls  int
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		keys:       []types.TeamKey{"ABC"},
		issues:     map[types.IssueIdentifier]*model.Issue{},
		creators:   map[string]*model.Creator{},
		statuses:   map[string]*model.Status{},
		issueErrs:  map[types.IssueIdentifier]error{},
		issueCalls: map[types.IssueIdentifier]int{},
	}
}

func (f *fakeTracker) ListTeamKeys(ctx context.Context) ([]types.TeamKey, error) {
	return f.keys, nil
}

func (f *fakeTracker) GetIssue(ctx context.Context, id types.IssueIdentifier) (*model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issueCalls[id]++
	if err, ok := f.issueErrs[id]; ok {
		return nil, err
	}
	return f.issues[id], nil
}

func (f *fakeTracker) GetCreator(ctx context.Context, userID string) (*model.Creator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creatorCalls++
	return f.creators[userID], nil
}

func (f *fakeTracker) GetStatus(ctx context.Context, stateID string) (*model.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	return f.statuses[stateID], nil
}

func (f *fakeTracker) IssueCalls(id types.IssueIdentifier) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueCalls[id]
}

// addIssue registers an issue with creator "usr-1" (Alice) and state "st-done" (Done)
func (f *fakeTracker) addIssue(id types.IssueIdentifier, title string, desc *string) *model.Issue {
	issue := &model.Issue{
		ID:          "iss-" + id.String(),
		Identifier:  id,
		Title:       title,
		URL:         "https://linear.app/acme/issue/" + id.String(),
		Description: desc,
		CreatorID:   "usr-1",
		StateID:     "st-done",
	}
	f.issues[id] = issue
	f.creators["usr-1"] = &model.Creator{ID: "usr-1", DisplayName: "Alice", AvatarURL: "https://example.com/alice.png"}
	f.statuses["st-done"] = &model.Status{ID: "st-done", Name: "Done", Color: "#00FF00"}
	return issue
}

// ----- fake ChatReplier -----

type replyCall struct {
	channelID string
	threadTS  string
	summaries []*model.Summary
}

type fakeReplier struct {
	mu    sync.Mutex
	calls []replyCall
	err   error
}

func (f *fakeReplier) Reply(ctx context.Context, channelID, threadTS string, summaries []*model.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, replyCall{channelID: channelID, threadTS: threadTS, summaries: summaries})
	return f.err
}

func ptr[T any](v T) *T {
	return &v
}
