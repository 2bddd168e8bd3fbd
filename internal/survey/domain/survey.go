package domain

// Survey represents a single student survey submission.
type Survey struct {
	ID                  int64
	FirstName           string              `validate:"notblank"`
	LastName            string              `validate:"notblank"`
	StreetAddress       string              `validate:"notblank"`
	City                string              `validate:"notblank"`
	State               string              `validate:"notblank"`
	Zip                 string              `validate:"notblank,zip5"`
	Telephone           string              `validate:"notblank,telephone"`
	Email               string              `validate:"notblank,email_address"`
	DateOfSurvey        Date
	LikedMost           []string            `validate:"omitempty,dive,notblank"`
	InterestSource      InterestSource      `validate:"required,interest_source"`
	RecommendLikelihood RecommendLikelihood `validate:"required,recommend_likelihood"`
	Comments            string              `validate:"max=2000"`
}

// Replace copies every mutable field of src onto s. The ID is kept.
func (s *Survey) Replace(src Survey) {
	id := s.ID
	*s = src
	s.ID = id
	s.LikedMost = cloneStrings(src.LikedMost)
}

// Clone returns a copy that shares no slices with s.
func (s Survey) Clone() Survey {
	s.LikedMost = cloneStrings(s.LikedMost)
	return s
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append(make([]string, 0, len(values)), values...)
}
