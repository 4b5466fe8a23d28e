// Package matcher computes pairwise study compatibility. Scoring is a
// weighted blend: subject overlap counts for 60% and time-slot overlap for
// 40%, each normalized by the larger of the two list lengths.
package matcher

import (
	"math"
	"sort"

	"github.com/studybuddy/backend/internal/models"
)

const (
	subjectWeight  = 60
	timeSlotWeight = 40

	// MaxResults caps the ranked list returned by Rank.
	MaxResults = 10
)

// Score computes the compatibility between two users. The returned common
// lists preserve the element order of a's lists. A term whose larger operand
// is empty contributes 0 instead of dividing by zero.
func Score(a, b *models.User) (score int, commonSubjects, commonTimeSlots []string) {
	commonSubjects = intersect(a.Subjects, b.Subjects)
	commonTimeSlots = intersect(a.TimeSlots, b.TimeSlots)

	subjectScore := weighted(len(commonSubjects), len(a.Subjects), len(b.Subjects), subjectWeight)
	timeSlotScore := weighted(len(commonTimeSlots), len(a.TimeSlots), len(b.TimeSlots), timeSlotWeight)

	score = int(math.Round(subjectScore + timeSlotScore))
	return score, commonSubjects, commonTimeSlots
}

// Rank scores every candidate against the subject user and returns at most
// MaxResults entries sorted by score descending. The sort is stable, so
// candidates with equal scores keep their input order.
func Rank(subject *models.User, candidates []models.User) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(candidates))
	for i := range candidates {
		score, subjects, slots := Score(subject, &candidates[i])
		results = append(results, models.MatchResult{
			User:               candidates[i],
			CommonSubjects:     subjects,
			CommonTimeSlots:    slots,
			CompatibilityScore: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompatibilityScore > results[j].CompatibilityScore
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func weighted(common, lenA, lenB, weight int) float64 {
	denom := lenA
	if lenB > denom {
		denom = lenB
	}
	if denom == 0 {
		return 0
	}
	return float64(common) / float64(denom) * float64(weight)
}

// intersect returns the elements of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]string, 0)
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
