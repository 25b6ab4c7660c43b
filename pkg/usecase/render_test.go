package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/usecase"
)

func resolvedFixture(desc *string, color string) *model.Resolution {
	return &model.Resolution{
		Identifier: "ABC-42",
		Issue: &model.Issue{
			Identifier:  "ABC-42",
			Title:       "Fix login",
			URL:         "https://linear.app/acme/issue/ABC-42",
			Description: desc,
			CreatedAt:   time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		Creator: &model.Creator{DisplayName: "Alice", AvatarURL: "https://example.com/alice.png"},
		Status:  &model.Status{Name: "Done", Color: color},
	}
}

func TestRender(t *testing.T) {
	opt := usecase.DefaultRenderOptions()

	t.Run("all fields", func(t *testing.T) {
		s := usecase.Render(resolvedFixture(ptr("short desc"), "#00FF00"), opt)
		gt.Value(t, s).NotNil().Required()
		gt.Value(t, s.AuthorName).Equal("Alice")
		gt.Value(t, s.AuthorIcon).Equal("https://example.com/alice.png")
		gt.Value(t, s.Title).Equal("ABC-42 - Fix login")
		gt.Value(t, s.URL).Equal("https://linear.app/acme/issue/ABC-42")
		gt.Value(t, s.Color).Equal("#00FF00")
		gt.Value(t, s.Body).Equal("short desc")
		gt.Value(t, s.Timestamp).Equal(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
		gt.Value(t, s.Footer).Equal("Status: Done")
	})

	t.Run("default accent without status color", func(t *testing.T) {
		s := usecase.Render(resolvedFixture(ptr("x"), ""), opt)
		gt.Value(t, s.Color).Equal(usecase.DefaultAccentColor)
	})

	t.Run("placeholder without description", func(t *testing.T) {
		s := usecase.Render(resolvedFixture(nil, "#000000"), opt)
		gt.Value(t, s.Body).Equal("_This issue has no description._")
	})

	t.Run("long description is truncated", func(t *testing.T) {
		s := usecase.Render(resolvedFixture(ptr(strings.Repeat("a", 250)), "#000000"), opt)
		gt.Value(t, s.Body).Equal(strings.Repeat("a", 200) + "...")
	})

	t.Run("custom options", func(t *testing.T) {
		s := usecase.Render(resolvedFixture(nil, ""), usecase.RenderOptions{
			AccentColor:      "#123456",
			DescriptionLimit: 10,
			Placeholder:      "no description",
		})
		gt.Value(t, s.Color).Equal("#123456")
		gt.Value(t, s.Body).Equal("no description")
	})

	t.Run("skipped resolution renders nothing", func(t *testing.T) {
		gt.Value(t, usecase.Render(model.Skip("ABC-1", model.SkipIssueNotFound, nil), opt)).Nil()
	})
}

func TestTruncate(t *testing.T) {
	exact := strings.Repeat("b", 200)
	over := strings.Repeat("c", 201)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "short desc", "short desc"},
		{"exactly at limit", exact, exact},
		{"one over limit", over, strings.Repeat("c", 200) + "..."},
		{"multibyte characters count once", strings.Repeat("é", 201), strings.Repeat("é", 200) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, usecase.Truncate(tt.in, 200)).Equal(tt.want)
		})
	}

	t.Run("non-positive limit keeps text", func(t *testing.T) {
		gt.Value(t, usecase.Truncate("abc", 0)).Equal("abc")
	})
}
