package application

import (
	"context"
	"fmt"

	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

type surveyService struct {
	repo SurveyRepository
}

func NewSurveyService(repo SurveyRepository) SurveyService {
	return &surveyService{repo: repo}
}

func (s *surveyService) List(ctx context.Context) ([]domain.Survey, error) {
	surveys, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	if surveys == nil {
		surveys = []domain.Survey{}
	}
	return surveys, nil
}

func (s *surveyService) Detail(ctx context.Context, id int64) (*domain.Survey, error) {
	survey, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find survey %d: %w", id, err)
	}
	if survey == nil {
		return nil, domain.ErrSurveyNotFound
	}
	return survey, nil
}

func (s *surveyService) Create(ctx context.Context, cmd UpsertSurveyCommand) (*domain.Survey, error) {
	survey, err := buildSurveyFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}
	return survey, nil
}

func (s *surveyService) Update(ctx context.Context, id int64, cmd UpsertSurveyCommand) (*domain.Survey, error) {
	candidate, err := buildSurveyFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find survey %d: %w", id, err)
	}
	if existing == nil {
		return nil, domain.ErrSurveyNotFound
	}
	existing.Replace(*candidate)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update survey %d: %w", id, err)
	}
	return existing, nil
}

func (s *surveyService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check survey %d: %w", id, err)
	}
	if !exists {
		return domain.ErrSurveyNotFound
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete survey %d: %w", id, err)
	}
	return nil
}

// buildSurveyFromCommand maps cmd onto a survey without id and validates it.
// The returned error is a *domain.ValidationError.
func buildSurveyFromCommand(cmd UpsertSurveyCommand) (*domain.Survey, error) {
	date, dateErr := domain.ParseDate(cmd.DateOfSurvey)

	survey := &domain.Survey{
		FirstName:           cmd.FirstName,
		LastName:            cmd.LastName,
		StreetAddress:       cmd.StreetAddress,
		City:                cmd.City,
		State:               cmd.State,
		Zip:                 cmd.Zip,
		Telephone:           cmd.Telephone,
		Email:               cmd.Email,
		DateOfSurvey:        date,
		LikedMost:           append([]string(nil), cmd.LikedMost...),
		InterestSource:      domain.InterestSource(cmd.InterestSource),
		RecommendLikelihood: domain.RecommendLikelihood(cmd.RecommendLikelihood),
		Comments:            cmd.Comments,
	}

	verr := survey.Validate()
	if dateErr != nil {
		if verr == nil {
			verr = &domain.ValidationError{}
		}
		verr.Put("dateOfSurvey", "must be a date in YYYY-MM-DD format")
	}
	if verr != nil {
		return nil, verr
	}
	return survey, nil
}
