package surveys

import (
	"github.com/sngm3741/student-survey/api/internal/survey/application"
	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

// toCommand はリクエストボディをユースケースのコマンドへ変換する。id は無視する。
func (req surveyRequest) toCommand() application.UpsertSurveyCommand {
	var likedMost []string
	if req.LikedMost != nil {
		likedMost = make([]string, 0, len(req.LikedMost))
		for _, item := range req.LikedMost {
			likedMost = append(likedMost, item.String())
		}
	}
	return application.UpsertSurveyCommand{
		FirstName:           req.FirstName.String(),
		LastName:            req.LastName.String(),
		StreetAddress:       req.StreetAddress.String(),
		City:                req.City.String(),
		State:               req.State.String(),
		Zip:                 req.Zip.String(),
		Telephone:           req.Telephone.String(),
		Email:               req.Email.String(),
		DateOfSurvey:        req.DateOfSurvey,
		LikedMost:           likedMost,
		InterestSource:      req.InterestSource,
		RecommendLikelihood: req.RecommendLikelihood,
		Comments:            req.Comments.String(),
	}
}

// surveyDomainToResponse はドメインの Survey を JSON レスポンスへ変換する。
func surveyDomainToResponse(survey domain.Survey) surveyResponse {
	likedMost := make([]string, len(survey.LikedMost))
	copy(likedMost, survey.LikedMost)

	return surveyResponse{
		ID:                  survey.ID,
		FirstName:           survey.FirstName,
		LastName:            survey.LastName,
		StreetAddress:       survey.StreetAddress,
		City:                survey.City,
		State:               survey.State,
		Zip:                 survey.Zip,
		Telephone:           survey.Telephone,
		Email:               survey.Email,
		DateOfSurvey:        survey.DateOfSurvey.String(),
		LikedMost:           likedMost,
		InterestSource:      survey.InterestSource.String(),
		RecommendLikelihood: survey.RecommendLikelihood.String(),
		Comments:            survey.Comments,
	}
}

func validationErrorToResponse(verr *domain.ValidationError) validationErrorResponse {
	violations := make([]violationResponse, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		violations = append(violations, violationResponse{Field: v.Field, Message: v.Message})
	}
	return validationErrorResponse{Error: "validation failed", Violations: violations}
}

func surveyOptions() optionsResponse {
	sources := make([]string, 0, len(domain.InterestSources))
	for _, s := range domain.InterestSources {
		sources = append(sources, s.String())
	}
	likelihoods := make([]string, 0, len(domain.RecommendLikelihoods))
	for _, l := range domain.RecommendLikelihoods {
		likelihoods = append(likelihoods, l.String())
	}
	return optionsResponse{InterestSources: sources, RecommendLikelihoods: likelihoods}
}
