package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sngm3741/student-survey/api/internal/survey/application"
	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

var (
	firstNames = []string{"Ann", "Bo", "Carla", "Dev", "Emeka", "Fatima", "Greg", "Hana", "Ivan", "Jun"}
	lastNames  = []string{"Lee", "Park", "Nguyen", "Okafor", "Schmidt", "Haddad", "Silva", "Kowalski"}
	streets    = []string{"Main St", "Elm Rd", "University Ave", "College Blvd", "Oak Ln", "Patriot Cir"}
	cities     = []struct{ city, state, zipPrefix string }{
		{"Fairfax", "VA", "220"},
		{"Springfield", "IL", "627"},
		{"Austin", "TX", "787"},
		{"Madison", "WI", "537"},
		{"Boulder", "CO", "803"},
	}
	likedOptions = []string{"Students", "Location", "Campus", "Atmosphere", "Dorm Rooms", "Sports"}
	comments     = []string{
		"",
		"Great tour, the guide answered every question.",
		"Parking was hard to find.",
		"Would love to see the labs next time.",
	}
)

// generateSurveys は検証を通る入力コマンドを count 件生成する。日付は now から過去 180 日以内。
func generateSurveys(rng *rand.Rand, count int, now time.Time) []application.UpsertSurveyCommand {
	cmds := make([]application.UpsertSurveyCommand, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		place := cities[rng.Intn(len(cities))]
		visited := now.AddDate(0, 0, -rng.Intn(180))

		cmds = append(cmds, application.UpsertSurveyCommand{
			FirstName:           first,
			LastName:            last,
			StreetAddress:       fmt.Sprintf("%d %s", 1+rng.Intn(9999), streets[rng.Intn(len(streets))]),
			City:                place.city,
			State:               place.state,
			Zip:                 fmt.Sprintf("%s%02d", place.zipPrefix, rng.Intn(100)),
			Telephone:           fmt.Sprintf("%03d-%03d-%04d", 200+rng.Intn(800), rng.Intn(1000), rng.Intn(10000)),
			Email:               fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			DateOfSurvey:        domain.DateOf(visited).String(),
			LikedMost:           pickUnique(rng, likedOptions, rng.Intn(len(likedOptions)+1)),
			InterestSource:      domain.InterestSources[rng.Intn(len(domain.InterestSources))].String(),
			RecommendLikelihood: domain.RecommendLikelihoods[rng.Intn(len(domain.RecommendLikelihoods))].String(),
			Comments:            comments[rng.Intn(len(comments))],
		})
	}
	return cmds
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count >= len(source) {
		cp := make([]string, len(source))
		copy(cp, source)
		return cp
	}
	seen := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := rng.Intn(len(source))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		result = append(result, source[idx])
	}
	return result
}
