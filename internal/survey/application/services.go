package application

import (
	"context"

	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

// SurveyRepository persists surveys keyed by a store-assigned integer id.
type SurveyRepository interface {
	// FindAll returns every survey in insertion order.
	FindAll(ctx context.Context) ([]domain.Survey, error)
	// FindByID returns nil without error when the survey does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Survey, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// Create assigns survey.ID and stores the survey.
	Create(ctx context.Context, survey *domain.Survey) error
	// Update replaces the stored survey with the same ID, or returns
	// domain.ErrSurveyNotFound when no such survey exists.
	Update(ctx context.Context, survey *domain.Survey) error
	DeleteByID(ctx context.Context, id int64) error
}

// SurveyService describes survey use-cases.
type SurveyService interface {
	List(ctx context.Context) ([]domain.Survey, error)
	Detail(ctx context.Context, id int64) (*domain.Survey, error)
	Create(ctx context.Context, cmd UpsertSurveyCommand) (*domain.Survey, error)
	Update(ctx context.Context, id int64, cmd UpsertSurveyCommand) (*domain.Survey, error)
	Delete(ctx context.Context, id int64) error
}

// UpsertSurveyCommand contains inputs for creating/updating surveys.
type UpsertSurveyCommand struct {
	FirstName           string
	LastName            string
	StreetAddress       string
	City                string
	State               string
	Zip                 string
	Telephone           string
	Email               string
	DateOfSurvey        string
	LikedMost           []string
	InterestSource      string
	RecommendLikelihood string
	Comments            string
}
