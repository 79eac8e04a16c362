package dashboard

import "strings"

// AllCategories is the filter selection that passes every course.
const AllCategories = "all"

// CategoryControl is how the category selector is rendered.
type CategoryControl string

const (
	ButtonGroup CategoryControl = "buttons"
	Dropdown    CategoryControl = "dropdown"
)

const buttonGroupMaxCategories = 3

// Categories returns the distinct lower-cased, non-empty categories of the
// enrolled courses in first-seen order.
func Categories(courses []EnrolledCourse) []string {
	seen := make(map[string]struct{}, len(courses))
	categories := make([]string, 0, len(courses))
	for _, c := range courses {
		cat := strings.ToLower(c.Category)
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		categories = append(categories, cat)
	}
	return categories
}

// FilterByCategory keeps the courses whose lower-cased category contains
// selected. AllCategories keeps everything.
func FilterByCategory(courses []EnrolledCourse, selected string) []EnrolledCourse {
	if selected == AllCategories {
		return courses
	}
	filtered := make([]EnrolledCourse, 0, len(courses))
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Category), selected) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// CategoryControlFor picks buttons for a handful of categories and a
// dropdown beyond that.
func CategoryControlFor(categories []string) CategoryControl {
	if len(categories) <= buttonGroupMaxCategories {
		return ButtonGroup
	}
	return Dropdown
}
