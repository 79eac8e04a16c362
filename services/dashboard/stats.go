package dashboard

import (
	"time"

	"github.com/jinzhu/now"
)

const (
	// learningGoalsTotal and goalsCompletedCap are a fixed presentation policy.
	// There is no goal tracking behind them.
	learningGoalsTotal = 4
	goalsCompletedCap  = 2

	streakPerCourse = 2
	minStreak       = 1
	maxStreak       = 8
)

// LearningGoals is the goals widget value.
type LearningGoals struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Stats is the dashboard summary for one learner.
type Stats struct {
	TotalEnrolled      int           `json:"totalEnrolled"`
	CertificatesEarned int           `json:"certificatesEarned"`
	LearningGoals      LearningGoals `json:"learningGoals"`
	LearningStreak     int           `json:"learningStreak"`
}

// ComputeStats summarises the enrolled courses as of ref.
func ComputeStats(courses []EnrolledCourse, ref time.Time) Stats {
	certificates := 0
	for _, c := range courses {
		if c.CertificateIssued {
			certificates++
		}
	}

	return Stats{
		TotalEnrolled:      len(courses),
		CertificatesEarned: certificates,
		LearningGoals: LearningGoals{
			Completed: min(goalsCompletedCap, len(courses)),
			Total:     learningGoalsTotal,
		},
		LearningStreak: Streak(courses, ref),
	}
}

// Streak approximates the learner's activity streak. It is not a
// consecutive-day count: if the most recently accessed course was opened
// today or yesterday the streak is twice the course count, clamped to [1,8].
// TODO: track daily activity deltas and count real consecutive days.
func Streak(courses []EnrolledCourse, ref time.Time) int {
	if len(courses) == 0 {
		return 0
	}

	mostRecent := time.Unix(0, 0)
	for i, c := range courses {
		at := time.Unix(0, 0)
		if c.LastAccessedAt != nil {
			at = *c.LastAccessedAt
		}
		if i == 0 || at.After(mostRecent) {
			mostRecent = at
		}
	}

	day := startOfDay(mostRecent, ref.Location())
	today := startOfDay(ref, ref.Location())
	yesterday := today.AddDate(0, 0, -1)

	if day.Equal(today) || day.Equal(yesterday) {
		return max(minStreak, min(len(courses)*streakPerCourse, maxStreak))
	}
	return 0
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return now.With(t.In(loc)).BeginningOfDay()
}
