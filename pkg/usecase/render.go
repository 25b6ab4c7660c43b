package usecase

import (
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
)

const (
	// DefaultAccentColor is used when the issue status has no color
	DefaultAccentColor = "#5865F2"
	// DefaultDescriptionLimit is the number of characters kept from a description
	DefaultDescriptionLimit = 200
	// DefaultPlaceholder replaces a missing description
	DefaultPlaceholder = "_This issue has no description._"

	ellipsis = "..."
)

// RenderOptions controls the parts of a summary that are not taken from the issue
type RenderOptions struct {
	AccentColor      string
	DescriptionLimit int
	Placeholder      string
}

// DefaultRenderOptions returns the built-in render settings
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		AccentColor:      DefaultAccentColor,
		DescriptionLimit: DefaultDescriptionLimit,
		Placeholder:      DefaultPlaceholder,
	}
}

// Render turns a resolved candidate into a summary. It returns nil for skipped
// resolutions.
func Render(res *model.Resolution, opt RenderOptions) *model.Summary {
	if !res.Resolved() {
		return nil
	}

	color := res.Status.Color
	if color == "" {
		color = opt.AccentColor
	}

	id := res.Issue.Identifier
	if id == "" {
		id = res.Identifier
	}

	body := opt.Placeholder
	if res.Issue.Description != nil {
		body = truncate(*res.Issue.Description, opt.DescriptionLimit)
	}

	return &model.Summary{
		AuthorName: res.Creator.DisplayName,
		AuthorIcon: res.Creator.AvatarURL,
		Title:      id.String() + " - " + res.Issue.Title,
		URL:        res.Issue.URL,
		Color:      color,
		Body:       body,
		Timestamp:  res.Issue.CreatedAt,
		Footer:     "Status: " + res.Status.Name,
	}
}

// truncate keeps the first limit characters of s and appends "..." when anything was
// cut. The result may be longer than limit by the ellipsis.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
