package linear

import (
	"time"

	"github.com/shurcooL/graphql"
)

// GraphQL query types

type teamsQuery struct {
	Teams struct {
		Nodes []struct {
			Key graphql.String
		}
		PageInfo pageInfo
	} `graphql:"teams(first: $first, after: $after)"`
}

type issueQuery struct {
	Issue issueNode `graphql:"issue(id: $id)"`
}

type issueNode struct {
	ID          graphql.String
	Identifier  graphql.String
	Title       graphql.String
	URL         graphql.String `graphql:"url"`
	Description *graphql.String
	CreatedAt   time.Time
	Creator     *struct {
		ID graphql.String
	}
	State *struct {
		ID graphql.String
	}
}

type userQuery struct {
	User struct {
		ID          graphql.String
		DisplayName graphql.String
		AvatarURL   *graphql.String `graphql:"avatarUrl"`
	} `graphql:"user(id: $id)"`
}

type workflowStateQuery struct {
	WorkflowState struct {
		ID    graphql.String
		Name  graphql.String
		Color graphql.String
	} `graphql:"workflowState(id: $id)"`
}

type pageInfo struct {
	HasNextPage bool
	EndCursor   graphql.String
}
