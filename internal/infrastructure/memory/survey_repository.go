// Package memory keeps surveys in process memory. Data is lost on restart.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

// SurveyRepository is an in-memory survey store. Safe for concurrent use.
type SurveyRepository struct {
	mu      sync.RWMutex
	lastID  int64
	surveys map[int64]domain.Survey
}

func NewSurveyRepository() *SurveyRepository {
	return &SurveyRepository{surveys: make(map[int64]domain.Survey)}
}

func (r *SurveyRepository) FindAll(_ context.Context) ([]domain.Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Survey, 0, len(r.surveys))
	for _, s := range r.surveys {
		result = append(result, s.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *SurveyRepository) FindByID(_ context.Context, id int64) (*domain.Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	clone := s.Clone()
	return &clone, nil
}

func (r *SurveyRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.surveys[id]
	return ok, nil
}

func (r *SurveyRepository) Create(_ context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	survey.ID = r.lastID
	r.surveys[survey.ID] = survey.Clone()
	return nil
}

func (r *SurveyRepository) Update(_ context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.surveys[survey.ID]; !ok {
		return domain.ErrSurveyNotFound
	}
	r.surveys[survey.ID] = survey.Clone()
	return nil
}

func (r *SurveyRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

// Ping always succeeds.
func (r *SurveyRepository) Ping(_ context.Context) error {
	return nil
}

func (r *SurveyRepository) Close(_ context.Context) error {
	return nil
}
