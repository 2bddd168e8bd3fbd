package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSurvey() Survey {
	return Survey{
		FirstName:           "Ann",
		LastName:            "Lee",
		StreetAddress:       "1 Main St",
		City:                "Springfield",
		State:               "IL",
		Zip:                 "62704",
		Telephone:           "555-123-4567",
		Email:               "ann@example.com",
		DateOfSurvey:        NewDate(2024, time.January, 10),
		LikedMost:           []string{"Location", "Staff"},
		InterestSource:      InterestSourceFriend,
		RecommendLikelihood: RecommendVeryLikely,
	}
}

func TestValidateAcceptsCompleteSurvey(t *testing.T) {
	assert.Nil(t, validSurvey().Validate())
}

func TestValidateAllowsEmptyOptionalFields(t *testing.T) {
	s := validSurvey()
	s.LikedMost = nil
	s.Comments = ""
	assert.Nil(t, s.Validate())

	s.LikedMost = []string{}
	assert.Nil(t, s.Validate())
}

func TestValidateRejectsSingleField(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Survey)
		field   string
		message string
	}{
		{"blank first name", func(s *Survey) { s.FirstName = "" }, "firstName", "must not be blank"},
		{"whitespace last name", func(s *Survey) { s.LastName = "   " }, "lastName", "must not be blank"},
		{"blank street", func(s *Survey) { s.StreetAddress = "" }, "streetAddress", "must not be blank"},
		{"blank city", func(s *Survey) { s.City = "\t" }, "city", "must not be blank"},
		{"blank state", func(s *Survey) { s.State = "" }, "state", "must not be blank"},
		{"short zip", func(s *Survey) { s.Zip = "1234" }, "zip", "Zip must be 5 digits"},
		{"letters in zip", func(s *Survey) { s.Zip = "ABCDE" }, "zip", "Zip must be 5 digits"},
		{"long zip", func(s *Survey) { s.Zip = "627041" }, "zip", "Zip must be 5 digits"},
		{"short telephone", func(s *Survey) { s.Telephone = "555-1" }, "telephone", "Phone must be at least 10 characters"},
		{"letters in telephone", func(s *Survey) { s.Telephone = "555-CALL-NOW" }, "telephone", "Phone must be at least 10 characters"},
		{"bad email", func(s *Survey) { s.Email = "ann.example.com" }, "email", "must be a well-formed email address"},
		{"blank email", func(s *Survey) { s.Email = "" }, "email", "must not be blank"},
		{"missing date", func(s *Survey) { s.DateOfSurvey = Date{} }, "dateOfSurvey", "must not be null"},
		{"missing interest source", func(s *Survey) { s.InterestSource = "" }, "interestSource", "must not be null"},
		{"unknown interest source", func(s *Survey) { s.InterestSource = "RADIO" }, "interestSource", "must be one of FRIEND, TELEVISION, INTERNET, OTHER"},
		{"missing likelihood", func(s *Survey) { s.RecommendLikelihood = "" }, "recommendLikelihood", "must not be null"},
		{"unknown likelihood", func(s *Survey) { s.RecommendLikelihood = "MAYBE" }, "recommendLikelihood", "must be one of VERY_LIKELY, LIKELY, UNLIKELY"},
		{"long comments", func(s *Survey) { s.Comments = strings.Repeat("x", MaxCommentsRunes+1) }, "comments", "size must be between 0 and 2000"},
		{"blank liked element", func(s *Survey) { s.LikedMost = []string{"Location", " "} }, "likedMost[1]", "must not be blank"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSurvey()
			tc.mutate(&s)

			verr := s.Validate()
			require.NotNil(t, verr)
			require.Equal(t, []string{tc.field}, verr.Fields())
			assert.Equal(t, tc.message, verr.Violations[0].Message)
		})
	}
}

func TestValidateAcceptsBoundaryValues(t *testing.T) {
	s := validSurvey()
	s.Comments = strings.Repeat("é", MaxCommentsRunes)
	s.Telephone = "(555) 123 4567"
	s.Zip = "00000"
	assert.Nil(t, s.Validate())

	s.Telephone = "+1 5551234"
	assert.Nil(t, s.Validate())

	s.Email = "ann@example"
	assert.Nil(t, s.Validate())
}

func TestValidateEmailSyntax(t *testing.T) {
	accepted := []string{
		"ann@example",
		"ann@localhost",
		"ann@example.com",
		"ann+tag@example.com",
		"o'brien@example.com",
		"ann@sub.example.co.uk",
		"first.last@my-school.edu",
		"ann@[192.168.0.1]",
		`"ann lee"@example.com`,
		"josé@example.com",
	}
	for _, email := range accepted {
		s := validSurvey()
		s.Email = email
		assert.Nil(t, s.Validate(), email)
	}

	rejected := []string{
		"ann.example.com",
		"@example.com",
		"ann@",
		"ann@@example.com",
		"ann..lee@example.com",
		".ann@example.com",
		"ann@example..com",
		"ann@-example.com",
		"ann@example-.com",
		"ann lee@example.com",
		strings.Repeat("a", 65) + "@example.com",
		"ann@" + strings.Repeat("b", 64) + ".com",
	}
	for _, email := range rejected {
		s := validSurvey()
		s.Email = email
		verr := s.Validate()
		if assert.NotNil(t, verr, email) {
			assert.Equal(t, []string{"email"}, verr.Fields(), email)
			assert.Equal(t, "must be a well-formed email address", verr.Violations[0].Message, email)
		}
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	verr := Survey{Zip: "ABCDE", Telephone: "555-1", LikedMost: []string{""}}.Validate()
	require.NotNil(t, verr)

	assert.Equal(t, []string{
		"firstName",
		"lastName",
		"streetAddress",
		"city",
		"state",
		"zip",
		"telephone",
		"email",
		"dateOfSurvey",
		"likedMost[0]",
		"interestSource",
		"recommendLikelihood",
	}, verr.Fields())
	assert.Contains(t, verr.Error(), "zip: Zip must be 5 digits")
}

func TestValidationErrorPutReplacesField(t *testing.T) {
	verr := &ValidationError{}
	verr.Put("dateOfSurvey", "must not be null")
	verr.Put("dateOfSurvey", "must be a date in YYYY-MM-DD format")

	require.Len(t, verr.Violations, 1)
	assert.True(t, verr.Has("dateOfSurvey"))
	assert.False(t, verr.Has("zip"))
	assert.Equal(t, "must be a date in YYYY-MM-DD format", verr.Violations[0].Message)
}
