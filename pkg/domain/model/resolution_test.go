package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
)

func TestResolution_Resolved(t *testing.T) {
	t.Run("nil resolution", func(t *testing.T) {
		var r *model.Resolution
		gt.Bool(t, r.Resolved()).False()
	})

	t.Run("skipped resolution", func(t *testing.T) {
		r := model.Skip("ABC-1", model.SkipMissingCreator, nil)
		gt.Bool(t, r.Resolved()).False()
		gt.Value(t, r.Identifier.String()).Equal("ABC-1")
	})

	t.Run("skipped with error keeps error", func(t *testing.T) {
		errFetch := errors.New("not found")
		r := model.Skip("ABC-1", model.SkipFetchIssueFailed, errFetch)
		gt.Value(t, r.Err).Equal(errFetch)
	})

	t.Run("complete resolution", func(t *testing.T) {
		r := &model.Resolution{
			Identifier: "ABC-1",
			Issue:      &model.Issue{Identifier: "ABC-1"},
			Creator:    &model.Creator{DisplayName: "Alice"},
			Status:     &model.Status{Name: "Done"},
		}
		gt.Bool(t, r.Resolved()).True()
	})

	t.Run("missing status", func(t *testing.T) {
		r := &model.Resolution{
			Identifier: "ABC-1",
			Issue:      &model.Issue{Identifier: "ABC-1"},
			Creator:    &model.Creator{DisplayName: "Alice"},
		}
		gt.Bool(t, r.Resolved()).False()
	})
}
