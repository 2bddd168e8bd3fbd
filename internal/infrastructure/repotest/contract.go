// Package repotest holds the behaviour every SurveyRepository backend must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/student-survey/api/internal/survey/application"
	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

// SampleSurvey returns a valid survey without id.
func SampleSurvey() domain.Survey {
	return domain.Survey{
		FirstName:           "Ann",
		LastName:            "Lee",
		StreetAddress:       "1 Main St",
		City:                "Springfield",
		State:               "IL",
		Zip:                 "62704",
		Telephone:           "555-123-4567",
		Email:               "ann@example.com",
		DateOfSurvey:        domain.NewDate(2024, time.January, 10),
		LikedMost:           []string{"Location", "Staff"},
		InterestSource:      domain.InterestSourceFriend,
		RecommendLikelihood: domain.RecommendVeryLikely,
	}
}

// RunSurveyRepositoryContract exercises repo, which must start empty.
func RunSurveyRepositoryContract(t *testing.T, repo application.SurveyRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("FindAll empty", func(t *testing.T) {
		surveys, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, surveys)
	})

	first := SampleSurvey()
	second := SampleSurvey()
	second.FirstName = "Bo"
	second.LikedMost = nil
	second.Comments = "Great campus"

	t.Run("Create assigns increasing ids", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &first))
		require.NoError(t, repo.Create(ctx, &second))
		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("FindByID returns stored fields", func(t *testing.T) {
		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first, *got)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		got, err := repo.FindByID(ctx, second.ID+100)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExistsByID", func(t *testing.T) {
		ok, err := repo.ExistsByID(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByID(ctx, second.ID+100)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("FindAll in insertion order", func(t *testing.T) {
		surveys, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, surveys, 2)
		assert.Equal(t, first.ID, surveys[0].ID)
		assert.Equal(t, second.ID, surveys[1].ID)
		assert.Equal(t, "Great campus", surveys[1].Comments)
		assert.Empty(t, surveys[1].LikedMost)
	})

	t.Run("Update replaces every field", func(t *testing.T) {
		replacement := SampleSurvey()
		replacement.ID = first.ID
		replacement.FirstName = "Annie"
		replacement.LikedMost = []string{"Sports"}
		replacement.InterestSource = domain.InterestSourceInternet
		replacement.RecommendLikelihood = domain.RecommendUnlikely
		replacement.DateOfSurvey = domain.NewDate(2024, time.February, 1)
		require.NoError(t, repo.Update(ctx, &replacement))

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, replacement, *got)
	})

	t.Run("DeleteByID removes only that survey", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, first.ID))

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		surveys, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, surveys, 1)
		assert.Equal(t, second.ID, surveys[0].ID)
	})

	t.Run("Update of a deleted survey signals not found", func(t *testing.T) {
		gone := SampleSurvey()
		gone.ID = first.ID
		err := repo.Update(ctx, &gone)
		assert.ErrorIs(t, err, domain.ErrSurveyNotFound)

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		third := SampleSurvey()
		require.NoError(t, repo.Create(ctx, &third))
		assert.Greater(t, third.ID, second.ID)
	})
}
