package dashboard

import (
	"sort"
	"time"
)

const maxRecentActivities = 3

// ActivityEntry is one completed content item in the activity feed.
type ActivityEntry struct {
	CourseTitle    string    `json:"courseTitle"`
	ContentTitle   string    `json:"contentTitle"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
}

// RecentActivity flattens completed, timestamped content progress across all
// enrolled courses and returns the three most recent entries.
func RecentActivity(courses []EnrolledCourse) []ActivityEntry {
	var activities []ActivityEntry
	for _, course := range courses {
		for _, module := range course.Enrollment.ModuleProgress {
			for _, content := range module.ContentProgress {
				if !content.Completed || content.LastAccessedAt == nil {
					continue
				}
				activities = append(activities, ActivityEntry{
					CourseTitle:    course.Title,
					ContentTitle:   content.ContentID,
					LastAccessedAt: *content.LastAccessedAt,
				})
			}
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].LastAccessedAt.After(activities[j].LastAccessedAt)
	})

	if len(activities) > maxRecentActivities {
		activities = activities[:maxRecentActivities]
	}
	return activities
}

// FormatActivityDate renders t relative to ref: "Today", "Yesterday", or the
// calendar date.
func FormatActivityDate(t, ref time.Time) string {
	day := startOfDay(t, ref.Location())
	today := startOfDay(ref, ref.Location())

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.In(ref.Location()).Format("Jan 2, 2006")
	}
}
