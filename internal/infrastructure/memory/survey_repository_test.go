package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/student-survey/api/internal/infrastructure/repotest"
)

func TestSurveyRepositoryContract(t *testing.T) {
	repotest.RunSurveyRepositoryContract(t, NewSurveyRepository())
}

func TestSurveyRepositoryIsolatesCallerSlices(t *testing.T) {
	ctx := context.Background()
	repo := NewSurveyRepository()

	s := repotest.SampleSurvey()
	require.NoError(t, repo.Create(ctx, &s))
	s.LikedMost[0] = "mutated"

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Location", got.LikedMost[0])

	got.LikedMost[1] = "mutated"
	again, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff", again.LikedMost[1])
}
