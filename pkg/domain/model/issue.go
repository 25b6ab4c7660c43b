package model

import (
	"time"

	"github.com/secmon-lab/linkrelay/pkg/domain/types"
)

// Issue is the subset of a tracker issue needed to render a summary
type Issue struct {
	ID          string
	Identifier  types.IssueIdentifier
	Title       string
	URL         string
	Description *string // nil when the issue has no description
	CreatedAt   time.Time
	CreatorID   string // empty when the creator is unknown, e.g. integrations
	StateID     string
}

// Creator is the user who opened an issue
type Creator struct {
	ID          string
	DisplayName string
	AvatarURL   string
}

// Status is the workflow state of an issue
type Status struct {
	ID    string
	Name  string
	Color string // hex color such as "#00FF00", may be empty
}
