package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/student-survey/api/internal/infrastructure/memory"
	"github.com/sngm3741/student-survey/api/internal/survey/application"
	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

func annCommand() application.UpsertSurveyCommand {
	return application.UpsertSurveyCommand{
		FirstName:           "Ann",
		LastName:            "Lee",
		StreetAddress:       "1 Main St",
		City:                "Springfield",
		State:               "IL",
		Zip:                 "62704",
		Telephone:           "555-123-4567",
		Email:               "ann@example.com",
		DateOfSurvey:        "2024-01-10",
		LikedMost:           []string{"Location", "Staff"},
		InterestSource:      "FRIEND",
		RecommendLikelihood: "VERY_LIKELY",
		Comments:            "",
	}
}

// countingRepository records mutating calls on top of the in-memory store.
type countingRepository struct {
	*memory.SurveyRepository
	creates, updates, deletes int
	failWith                  error
}

func newCountingRepository() *countingRepository {
	return &countingRepository{SurveyRepository: memory.NewSurveyRepository()}
}

func (r *countingRepository) Create(ctx context.Context, s *domain.Survey) error {
	r.creates++
	if r.failWith != nil {
		return r.failWith
	}
	return r.SurveyRepository.Create(ctx, s)
}

func (r *countingRepository) Update(ctx context.Context, s *domain.Survey) error {
	r.updates++
	return r.SurveyRepository.Update(ctx, s)
}

func (r *countingRepository) DeleteByID(ctx context.Context, id int64) error {
	r.deletes++
	return r.SurveyRepository.DeleteByID(ctx, id)
}

func TestAnnScenario(t *testing.T) {
	ctx := context.Background()
	svc := application.NewSurveyService(memory.NewSurveyRepository())

	created, err := svc.Create(ctx, annCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Detail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Survey{
		ID:                  1,
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
	}, *got)

	require.NoError(t, svc.Delete(ctx, 1))

	_, err = svc.Detail(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}

func TestCreateRejectsInvalidZipWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepository()
	svc := application.NewSurveyService(repo)

	_, err := svc.Create(ctx, annCommand())
	require.NoError(t, err)

	cmd := annCommand()
	cmd.Zip = "ABCDE"
	_, err = svc.Create(ctx, cmd)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("zip"))
	assert.Equal(t, 1, repo.creates)

	surveys, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, surveys, 1)
}

func TestCreateReportsEveryViolation(t *testing.T) {
	repo := newCountingRepository()
	svc := application.NewSurveyService(repo)

	cmd := annCommand()
	cmd.FirstName = ""
	cmd.Zip = "1234"
	cmd.Telephone = "555-1"
	cmd.DateOfSurvey = "January 10"

	_, err := svc.Create(context.Background(), cmd)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"firstName", "zip", "telephone", "dateOfSurvey"}, verr.Fields())
	assert.Equal(t, "must be a date in YYYY-MM-DD format", verr.Violations[3].Message)
	assert.Zero(t, repo.creates)
}

func TestCreateRequiresDate(t *testing.T) {
	cmd := annCommand()
	cmd.DateOfSurvey = ""

	_, err := application.NewSurveyService(memory.NewSurveyRepository()).Create(context.Background(), cmd)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"dateOfSurvey"}, verr.Fields())
	assert.Equal(t, "must not be null", verr.Violations[0].Message)
}

func TestCreateAllowsEmptyLikedMost(t *testing.T) {
	cmd := annCommand()
	cmd.LikedMost = nil

	created, err := application.NewSurveyService(memory.NewSurveyRepository()).Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Empty(t, created.LikedMost)
}

func TestUnknownIDsSignalNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepository()
	svc := application.NewSurveyService(repo)

	_, err := svc.Detail(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)

	_, err = svc.Update(ctx, 42, annCommand())
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 42), domain.ErrSurveyNotFound)
	assert.Zero(t, repo.updates)
	assert.Zero(t, repo.deletes)
}

func TestDeleteTwiceSignalsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := application.NewSurveyService(memory.NewSurveyRepository())

	created, err := svc.Create(ctx, annCommand())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrSurveyNotFound)

	_, err = svc.Update(ctx, created.ID, annCommand())
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}

func TestUpdateReplacesEveryField(t *testing.T) {
	ctx := context.Background()
	svc := application.NewSurveyService(memory.NewSurveyRepository())

	orig := annCommand()
	orig.Comments = "Loved the library"
	created, err := svc.Create(ctx, orig)
	require.NoError(t, err)

	next := application.UpsertSurveyCommand{
		FirstName:           "Bo",
		LastName:            "Park",
		StreetAddress:       "9 Elm Rd",
		City:                "Fairfax",
		State:               "VA",
		Zip:                 "22030",
		Telephone:           "(703) 555 0100",
		Email:               "bo@example.org",
		DateOfSurvey:        "2024-03-02",
		InterestSource:      "INTERNET",
		RecommendLikelihood: "UNLIKELY",
	}
	updated, err := svc.Update(ctx, created.ID, next)
	require.NoError(t, err)

	want := domain.Survey{
		ID:                  created.ID,
		FirstName:           "Bo",
		LastName:            "Park",
		StreetAddress:       "9 Elm Rd",
		City:                "Fairfax",
		State:               "VA",
		Zip:                 "22030",
		Telephone:           "(703) 555 0100",
		Email:               "bo@example.org",
		DateOfSurvey:        domain.NewDate(2024, time.March, 2),
		InterestSource:      domain.InterestSourceInternet,
		RecommendLikelihood: domain.RecommendUnlikely,
	}
	assert.Equal(t, want, *updated)

	stored, err := svc.Detail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, want, *stored)
	assert.Empty(t, stored.Comments)
	assert.Empty(t, stored.LikedMost)
}

// vanishingRepository deletes a survey right after it has been read, as a concurrent
// client would.
type vanishingRepository struct {
	*memory.SurveyRepository
}

func (r vanishingRepository) FindByID(ctx context.Context, id int64) (*domain.Survey, error) {
	survey, err := r.SurveyRepository.FindByID(ctx, id)
	if err != nil || survey == nil {
		return survey, err
	}
	return survey, r.SurveyRepository.DeleteByID(ctx, id)
}

func TestUpdateOfConcurrentlyDeletedSurvey(t *testing.T) {
	ctx := context.Background()
	repo := vanishingRepository{memory.NewSurveyRepository()}
	svc := application.NewSurveyService(repo)

	created, err := svc.Create(ctx, annCommand())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, annCommand())
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)

	surveys, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, surveys)
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepository()
	svc := application.NewSurveyService(repo)

	cmd := annCommand()
	cmd.Email = "not-an-email"

	_, err := svc.Update(ctx, 42, cmd)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, errors.Is(err, domain.ErrSurveyNotFound))
	assert.Equal(t, []string{"email"}, verr.Fields())
	assert.Zero(t, repo.updates)
}

func TestListEmptyIsNotAnError(t *testing.T) {
	surveys, err := application.NewSurveyService(memory.NewSurveyRepository()).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, surveys)
	assert.Empty(t, surveys)
}

func TestStorageFailureIsPropagated(t *testing.T) {
	repo := newCountingRepository()
	boom := errors.New("disk full")
	repo.failWith = boom

	_, err := application.NewSurveyService(repo).Create(context.Background(), annCommand())
	require.ErrorIs(t, err, boom)

	var verr *domain.ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.False(t, errors.Is(err, domain.ErrSurveyNotFound))
}
