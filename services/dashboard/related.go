package dashboard

import "strings"

const maxRelatedCourses = 3

// RelatedCourses suggests catalog courses the learner is not enrolled in that
// share a category with an enrolled course. Categories are matched by
// equality (unlike FilterByCategory) and results keep catalog order.
func RelatedCourses(enrolled []EnrolledCourse, catalog []Course) []Course {
	enrolledIDs := make(map[uint]struct{}, len(enrolled))
	for _, c := range enrolled {
		enrolledIDs[c.ID] = struct{}{}
	}

	categories := make(map[string]struct{})
	for _, cat := range Categories(enrolled) {
		categories[cat] = struct{}{}
	}

	related := make([]Course, 0, maxRelatedCourses)
	if len(categories) == 0 {
		return related
	}
	for _, c := range catalog {
		if _, ok := enrolledIDs[c.ID]; ok {
			continue
		}
		if _, ok := categories[strings.ToLower(c.Category)]; !ok {
			continue
		}
		related = append(related, c)
		if len(related) == maxRelatedCourses {
			break
		}
	}
	return related
}
