package surveys

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// textField is a free-text request field. Besides JSON strings it takes numbers and
// booleans verbatim ("zip": 62704 reads as "62704"); null leaves it empty.
type textField string

func (f *textField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = textField(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*f = textField(data)
		return nil
	case json.Valid(data) && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*f = textField(data)
		return nil
	default:
		return fmt.Errorf("text field: unsupported JSON value %s", data)
	}
}

func (f textField) String() string {
	return string(f)
}

type surveyRequest struct {
	FirstName           textField   `json:"firstName"`
	LastName            textField   `json:"lastName"`
	StreetAddress       textField   `json:"streetAddress"`
	City                textField   `json:"city"`
	State               textField   `json:"state"`
	Zip                 textField   `json:"zip"`
	Telephone           textField   `json:"telephone"`
	Email               textField   `json:"email"`
	DateOfSurvey        string      `json:"dateOfSurvey"`
	LikedMost           []textField `json:"likedMost"`
	InterestSource      string      `json:"interestSource"`
	RecommendLikelihood string      `json:"recommendLikelihood"`
	Comments            textField   `json:"comments"`
}

type surveyResponse struct {
	ID                  int64    `json:"id"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	StreetAddress       string   `json:"streetAddress"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	Zip                 string   `json:"zip"`
	Telephone           string   `json:"telephone"`
	Email               string   `json:"email"`
	DateOfSurvey        string   `json:"dateOfSurvey"`
	LikedMost           []string `json:"likedMost"`
	InterestSource      string   `json:"interestSource"`
	RecommendLikelihood string   `json:"recommendLikelihood"`
	Comments            string   `json:"comments"`
}

type violationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error      string              `json:"error"`
	Violations []violationResponse `json:"violations"`
}

type optionsResponse struct {
	InterestSources      []string `json:"interestSources"`
	RecommendLikelihoods []string `json:"recommendLikelihoods"`
}
