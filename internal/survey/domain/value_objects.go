package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// InterestSource is how the respondent became interested in the university.
type InterestSource string

const (
	InterestSourceFriend     InterestSource = "FRIEND"
	InterestSourceTelevision InterestSource = "TELEVISION"
	InterestSourceInternet   InterestSource = "INTERNET"
	InterestSourceOther      InterestSource = "OTHER"
)

// InterestSources lists every accepted InterestSource in display order.
var InterestSources = []InterestSource{
	InterestSourceFriend,
	InterestSourceTelevision,
	InterestSourceInternet,
	InterestSourceOther,
}

func (s InterestSource) IsValid() bool {
	for _, allowed := range InterestSources {
		if s == allowed {
			return true
		}
	}
	return false
}

func (s InterestSource) String() string {
	return string(s)
}

// RecommendLikelihood is how likely the respondent is to recommend the university.
type RecommendLikelihood string

const (
	RecommendVeryLikely RecommendLikelihood = "VERY_LIKELY"
	RecommendLikely     RecommendLikelihood = "LIKELY"
	RecommendUnlikely   RecommendLikelihood = "UNLIKELY"
)

// RecommendLikelihoods lists every accepted RecommendLikelihood in display order.
var RecommendLikelihoods = []RecommendLikelihood{
	RecommendVeryLikely,
	RecommendLikely,
	RecommendUnlikely,
}

func (r RecommendLikelihood) IsValid() bool {
	for _, allowed := range RecommendLikelihoods {
		if r == allowed {
			return true
		}
	}
	return false
}

func (r RecommendLikelihood) String() string {
	return string(r)
}

// Date is a calendar date without time of day or zone. The zero Date means "absent";
// 0001-01-01 is a present date.
type Date struct {
	t     time.Time
	valid bool
}

// NewDate builds a Date from its calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses YYYY-MM-DD. An empty value yields the zero Date.
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", trimmed, err)
	}
	return Date{t: t, valid: true}, nil
}

// IsZero reports whether no date was supplied.
func (d Date) IsZero() bool {
	return !d.valid
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}
