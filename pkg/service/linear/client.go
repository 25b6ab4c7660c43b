package linear

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/interfaces"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
	"github.com/shurcooL/graphql"
)

const (
	// DefaultEndpoint is the Linear GraphQL API endpoint
	DefaultEndpoint = "https://api.linear.app/graphql"

	defaultTimeout = 30 * time.Second
	teamsPageSize  = 100
)

type client struct {
	gql *graphql.Client
}

var _ interfaces.IssueTracker = (*client)(nil)

type config struct {
	endpoint string
	timeout  time.Duration
	base     http.RoundTripper
}

// Option is a functional option for client configuration
type Option func(*config)

// WithEndpoint overrides the GraphQL endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *config) {
		c.base = rt
	}
}

// apiKeyTransport puts the personal API key in the Authorization header. Linear
// expects the bare key, not a bearer token.
type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", t.apiKey)
	return t.base.RoundTrip(req)
}

// New creates a Linear issue tracker client authenticated with apiKey
func New(apiKey string, opts ...Option) (interfaces.IssueTracker, error) {
	if apiKey == "" {
		return nil, goerr.New("Linear API key is required")
	}

	cfg := &config{
		endpoint: DefaultEndpoint,
		timeout:  defaultTimeout,
		base:     http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{
		Transport: &apiKeyTransport{apiKey: apiKey, base: cfg.base},
		Timeout:   cfg.timeout,
	}

	return &client{gql: graphql.NewClient(cfg.endpoint, httpClient)}, nil
}

// ListTeamKeys fetches all team keys, following pagination
func (c *client) ListTeamKeys(ctx context.Context) ([]types.TeamKey, error) {
	var keys []types.TeamKey
	var cursor *graphql.String

	for {
		var q teamsQuery
		variables := map[string]any{
			"first": graphql.Int(teamsPageSize),
			"after": cursor,
		}

		if err := c.gql.Query(ctx, &q, variables); err != nil {
			return nil, goerr.Wrap(err, "failed to list teams")
		}

		for _, node := range q.Teams.Nodes {
			keys = append(keys, types.TeamKey(node.Key))
		}

		if !q.Teams.PageInfo.HasNextPage {
			return keys, nil
		}
		next := q.Teams.PageInfo.EndCursor
		cursor = &next
	}
}

// GetIssue fetches an issue by its human readable identifier
func (c *client) GetIssue(ctx context.Context, id types.IssueIdentifier) (*model.Issue, error) {
	var q issueQuery
	variables := map[string]any{
		"id": graphql.String(id),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get issue", goerr.V("identifier", id))
	}

	if q.Issue.ID == "" {
		return nil, nil
	}

	return convertIssue(q.Issue), nil
}

// GetCreator fetches a user by ID
func (c *client) GetCreator(ctx context.Context, userID string) (*model.Creator, error) {
	var q userQuery
	variables := map[string]any{
		"id": graphql.String(userID),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("user_id", userID))
	}

	if q.User.ID == "" {
		return nil, nil
	}

	creator := &model.Creator{
		ID:          string(q.User.ID),
		DisplayName: string(q.User.DisplayName),
	}
	if q.User.AvatarURL != nil {
		creator.AvatarURL = string(*q.User.AvatarURL)
	}
	return creator, nil
}

// GetStatus fetches a workflow state by ID
func (c *client) GetStatus(ctx context.Context, stateID string) (*model.Status, error) {
	var q workflowStateQuery
	variables := map[string]any{
		"id": graphql.String(stateID),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get workflow state", goerr.V("state_id", stateID))
	}

	if q.WorkflowState.ID == "" {
		return nil, nil
	}

	return &model.Status{
		ID:    string(q.WorkflowState.ID),
		Name:  string(q.WorkflowState.Name),
		Color: string(q.WorkflowState.Color),
	}, nil
}

// isNotFound matches Linear's "Entity not found" GraphQL error
func isNotFound(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "entity not found")
}

// Conversion helpers

func convertIssue(n issueNode) *model.Issue {
	issue := &model.Issue{
		ID:         string(n.ID),
		Identifier: types.IssueIdentifier(n.Identifier),
		Title:      string(n.Title),
		URL:        string(n.URL),
		CreatedAt:  n.CreatedAt,
	}
	if n.Description != nil {
		desc := string(*n.Description)
		issue.Description = &desc
	}
	if n.Creator != nil {
		issue.CreatorID = string(n.Creator.ID)
	}
	if n.State != nil {
		issue.StateID = string(n.State.ID)
	}
	return issue
}
