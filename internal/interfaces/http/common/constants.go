package common

const (
	// MaxSurveyRequestBody limits JSON request bodies for survey endpoints.
	MaxSurveyRequestBody = 1 << 20
)
