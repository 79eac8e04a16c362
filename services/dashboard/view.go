package dashboard

import "time"

// Activity is an ActivityEntry with its display date.
type Activity struct {
	ActivityEntry
	When string `json:"when"`
}

// View is everything the student dashboard renders.
type View struct {
	Stats           Stats            `json:"stats"`
	Categories      []string         `json:"categories"`
	CategoryControl CategoryControl  `json:"categoryControl"`
	ActiveCategory  string           `json:"activeCategory"`
	Courses         []EnrolledCourse `json:"courses"`
	RelatedCourses  []Course         `json:"relatedCourses"`
	RecentActivity  []Activity       `json:"recentActivities"`
}

// Build recomputes the whole dashboard. An empty selection means AllCategories.
func Build(enrolled []EnrolledCourse, catalog []Course, selected string, ref time.Time) View {
	if selected == "" {
		selected = AllCategories
	}

	categories := Categories(enrolled)

	entries := RecentActivity(enrolled)
	activities := make([]Activity, len(entries))
	for i, e := range entries {
		activities[i] = Activity{ActivityEntry: e, When: FormatActivityDate(e.LastAccessedAt, ref)}
	}

	return View{
		Stats:           ComputeStats(enrolled, ref),
		Categories:      categories,
		CategoryControl: CategoryControlFor(categories),
		ActiveCategory:  selected,
		Courses:         FilterByCategory(enrolled, selected),
		RelatedCourses:  RelatedCourses(enrolled, catalog),
		RecentActivity:  activities,
	}
}
