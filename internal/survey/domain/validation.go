package domain

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MaxCommentsRunes bounds the free-text comments field.
const MaxCommentsRunes = 2000

const (
	emailAtom      = "[a-z0-9!#$%&'*+/=?^_`{|}~\\x{0080}-\\x{FFFF}-]"
	emailLabelChar = "[a-z0-9!#$%&'*+/=?^_`{|}~\\x{0080}-\\x{FFFF}]"
	emailLabel     = "(?:" + emailLabelChar + "-*)*" + emailLabelChar + "+"

	maxEmailLocalLength  = 64
	maxEmailDomainLength = 255
	maxEmailLabelLength  = 63
)

var (
	zipPattern       = regexp.MustCompile(`^\d{5}$`)
	telephonePattern = regexp.MustCompile(`^[\d\-+\s()]{10,}$`)

	// Mailbox syntax: dot-atom or quoted local part, then dotted labels (a single label is
	// allowed) or a bracketed IP literal.
	emailLocalPattern  = regexp.MustCompile("(?i)^(?:" + emailAtom + `+(?:\.` + emailAtom + `+)*|"(?:[^"\\]|\\.)*")$`)
	emailDomainPattern = regexp.MustCompile("(?i)^(?:" + emailLabel + `(?:\.` + emailLabel + `)*` +
		`|\[[0-9]{1,3}(?:\.[0-9]{1,3}){3}\]` +
		`|\[IPv6:[0-9a-f:.]+\])$`)

	validate = newValidator()

	// fieldOrder keeps violation reports in form order.
	fieldOrder = map[string]int{
		"firstName":           0,
		"lastName":            1,
		"streetAddress":       2,
		"city":                3,
		"state":               4,
		"zip":                 5,
		"telephone":           6,
		"email":               7,
		"dateOfSurvey":        8,
		"likedMost":           9,
		"interestSource":      10,
		"recommendLikelihood": 11,
		"comments":            12,
	}
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return lowerFirst(field.Name)
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "zip5", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "telephone", func(fl validator.FieldLevel) bool {
		return telephonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "email_address", func(fl validator.FieldLevel) bool {
		return isEmailAddress(fl.Field().String())
	})
	mustRegister(v, "interest_source", func(fl validator.FieldLevel) bool {
		return InterestSource(fl.Field().String()).IsValid()
	})
	mustRegister(v, "recommend_likelihood", func(fl validator.FieldLevel) bool {
		return RecommendLikelihood(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks every field constraint of s and reports all violations at once.
// It returns nil when s is acceptable for create or update.
func (s Survey) Validate() *ValidationError {
	verr := &ValidationError{}

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.Put("survey", err.Error())
			return verr
		}
		for _, fe := range fieldErrs {
			verr.Put(fe.Field(), violationMessage(fe))
		}
	}
	if s.DateOfSurvey.IsZero() {
		verr.Put("dateOfSurvey", "must not be null")
	}

	if len(verr.Violations) == 0 {
		return nil
	}
	sort.SliceStable(verr.Violations, func(i, j int) bool {
		return fieldRank(verr.Violations[i].Field) < fieldRank(verr.Violations[j].Field)
	})
	return verr
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "required":
		return "must not be null"
	case "zip5":
		return "Zip must be 5 digits"
	case "telephone":
		return "Phone must be at least 10 characters"
	case "email_address":
		return "must be a well-formed email address"
	case "interest_source":
		return "must be one of " + joinValues(InterestSources)
	case "recommend_likelihood":
		return "must be one of " + joinValues(RecommendLikelihoods)
	case "max":
		return "size must be between 0 and " + fe.Param()
	default:
		return "is invalid"
	}
}

// isEmailAddress splits at the last '@' and checks both halves and their length limits.
func isEmailAddress(value string) bool {
	at := strings.LastIndexByte(value, '@')
	if at <= 0 || at == len(value)-1 {
		return false
	}
	local, domain := value[:at], value[at+1:]
	if utf8.RuneCountInString(local) > maxEmailLocalLength || len(domain) > maxEmailDomainLength {
		return false
	}
	if !emailLocalPattern.MatchString(local) || !emailDomainPattern.MatchString(domain) {
		return false
	}
	if strings.HasPrefix(domain, "[") {
		return true
	}
	for _, label := range strings.Split(domain, ".") {
		if len(label) > maxEmailLabelLength {
			return false
		}
	}
	return true
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}

func fieldRank(field string) int {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if rank, ok := fieldOrder[field]; ok {
		return rank
	}
	return len(fieldOrder)
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
