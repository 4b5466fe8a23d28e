package matcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studybuddy/backend/internal/models"
)

func user(subjects, timeSlots []string) *models.User {
	return &models.User{Subjects: subjects, TimeSlots: timeSlots}
}

func TestScoreDisjointUsersIsZero(t *testing.T) {
	a := user([]string{"Math", "Physics"}, []string{"Morning (6AM-10AM)"})
	b := user([]string{"History", "Biology"}, []string{"Night (10PM-2AM)"})

	score, subjects, slots := Score(a, b)

	assert.Equal(t, 0, score)
	assert.Empty(t, subjects)
	assert.Empty(t, slots)
}

func TestScoreEmptySubjectsContributesZero(t *testing.T) {
	a := user(nil, []string{"Morning (6AM-10AM)"})
	b := user(nil, []string{"Morning (6AM-10AM)"})

	// Both subject lists empty: the subject term must be 0, not a division
	// by zero. The slot term is a full overlap, worth 40.
	score, _, _ := Score(a, b)
	assert.Equal(t, 40, score)
}

func TestScoreBothListsEmpty(t *testing.T) {
	score, _, _ := Score(user(nil, nil), user(nil, nil))
	assert.Equal(t, 0, score)
}

func TestScoreIsSymmetric(t *testing.T) {
	a := user([]string{"Math", "Physics", "Chemistry"}, []string{"Morning (6AM-10AM)", "Evening (6PM-10PM)"})
	b := user([]string{"Physics"}, []string{"Evening (6PM-10PM)", "Night (10PM-2AM)", "Morning (6AM-10AM)"})

	scoreAB, _, _ := Score(a, b)
	scoreBA, _, _ := Score(b, a)
	assert.Equal(t, scoreAB, scoreBA)
}

func TestScoreWorkedExample(t *testing.T) {
	// A: subjects [Math, Physics], slots [Morning]
	// B: subjects [Physics, Chemistry], slots [Morning, Evening]
	// score = round(60*1/2 + 40*1/2) = 50
	a := user([]string{"Math", "Physics"}, []string{"Morning (6AM-10AM)"})
	b := user([]string{"Physics", "Chemistry"}, []string{"Morning (6AM-10AM)", "Evening (6PM-10PM)"})

	score, subjects, slots := Score(a, b)

	assert.Equal(t, 50, score)
	assert.Equal(t, []string{"Physics"}, subjects)
	assert.Equal(t, []string{"Morning (6AM-10AM)"}, slots)
}

func TestScoreCommonListsPreserveSubjectOrder(t *testing.T) {
	a := user([]string{"Math", "Physics", "Chemistry"}, nil)
	b := user([]string{"Chemistry", "Math"}, nil)

	_, subjects, _ := Score(a, b)
	assert.Equal(t, []string{"Math", "Chemistry"}, subjects)
}

func TestRankSortsDescending(t *testing.T) {
	subject := user([]string{"Math", "Physics"}, []string{"Morning (6AM-10AM)"})
	candidates := []models.User{
		*user([]string{"History"}, []string{"Night (10PM-2AM)"}),                                      // 0
		*user([]string{"Math", "Physics"}, []string{"Morning (6AM-10AM)"}),                            // 100
		*user([]string{"Physics", "Chemistry"}, []string{"Morning (6AM-10AM)", "Evening (6PM-10PM)"}), // 50
	}

	results := Rank(subject, candidates)

	assert.Len(t, results, 3)
	assert.Equal(t, 100, results[0].CompatibilityScore)
	assert.Equal(t, 50, results[1].CompatibilityScore)
	assert.Equal(t, 0, results[2].CompatibilityScore)
}

func TestRankIsStableOnTies(t *testing.T) {
	subject := user([]string{"Math"}, nil)
	candidates := make([]models.User, 5)
	for i := range candidates {
		candidates[i] = *user([]string{"Math"}, nil)
		candidates[i].Name = fmt.Sprintf("candidate-%d", i)
	}

	results := Rank(subject, candidates)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("candidate-%d", i), r.User.Name)
	}
}

func TestRankCapsAtTen(t *testing.T) {
	subject := user([]string{"Math"}, nil)
	candidates := make([]models.User, 25)
	for i := range candidates {
		candidates[i] = *user([]string{"Math"}, nil)
	}

	results := Rank(subject, candidates)
	assert.Len(t, results, MaxResults)
}

func TestRankEmptyPopulation(t *testing.T) {
	results := Rank(user([]string{"Math"}, nil), nil)
	assert.Empty(t, results)
}
