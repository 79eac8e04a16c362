package learner

import (
	"testing"
	"time"

	"tourlms/services/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsEmpty(t *testing.T) {
	s := NewSession()

	_, ok := s.Identity()
	assert.False(t, ok)
	catalog, tag := s.Catalog()
	assert.Empty(t, catalog)
	assert.Equal(t, CacheEmpty, tag)
}

func TestPatchEnrollmentIsByIdentifier(t *testing.T) {
	s := NewSession()
	s.SetCatalog([]dashboard.Course{
		{ID: 1, Title: "Same title", Enrolled: 4, EnrolledStudents: []uint{7}},
		{ID: 2, Title: "Same title", Enrolled: 1},
	})

	assert.True(t, s.PatchEnrollment(2, 9))

	catalog, tag := s.Catalog()
	assert.Equal(t, CacheOptimistic, tag)
	assert.Equal(t, 4, catalog[0].Enrolled)
	assert.False(t, catalog[0].IsEnrolled)
	assert.Equal(t, 2, catalog[1].Enrolled)
	assert.Equal(t, []uint{9}, catalog[1].EnrolledStudents)
	assert.True(t, catalog[1].IsEnrolled)
}

func TestPatchEnrollmentTwiceDoesNotDoubleCount(t *testing.T) {
	s := NewSession()
	s.SetCatalog([]dashboard.Course{{ID: 1, Enrolled: 0}})

	s.PatchEnrollment(1, 9)
	s.PatchEnrollment(1, 9)

	catalog, _ := s.Catalog()
	assert.Equal(t, 1, catalog[0].Enrolled)
	assert.Equal(t, []uint{9}, catalog[0].EnrolledStudents)
}

func TestPatchEnrollmentUnknownCourse(t *testing.T) {
	s := NewSession()
	s.SetCatalog([]dashboard.Course{{ID: 1}})

	assert.False(t, s.PatchEnrollment(42, 9))
	_, tag := s.Catalog()
	assert.Equal(t, CacheAuthoritative, tag)
}

func TestCatalogReturnsCopies(t *testing.T) {
	s := NewSession()
	s.SetCatalog([]dashboard.Course{{ID: 1, EnrolledStudents: []uint{3}}})

	catalog, _ := s.Catalog()
	catalog[0].EnrolledStudents[0] = 99
	catalog[0].Title = "changed"

	again, _ := s.Catalog()
	assert.Equal(t, uint(3), again[0].EnrolledStudents[0])
	assert.Empty(t, again[0].Title)
}

func TestReplaceAndSignOut(t *testing.T) {
	s := NewSession()
	s.SignIn(dashboard.Learner{ID: 9}, "tok")
	s.SetCatalog([]dashboard.Course{{ID: 1}})
	s.PatchEnrollment(1, 9)

	s.Replace(&dashboard.Profile{
		User:            dashboard.Learner{ID: 9, Name: "Ama"},
		Courses:         []dashboard.Course{{ID: 1, Enrolled: 10}, {ID: 2}},
		EnrolledCourses: []dashboard.EnrolledCourse{{Course: dashboard.Course{ID: 1}}},
	})

	user, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "Ama", user.Name)
	catalog, tag := s.Catalog()
	assert.Equal(t, CacheAuthoritative, tag)
	assert.Len(t, catalog, 2)
	assert.Equal(t, 10, catalog[0].Enrolled)
	assert.True(t, s.IsEnrolled(dashboard.Course{ID: 1}, 9))

	s.SignOut()
	_, ok = s.Identity()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Enrolled())
}

func TestSessionDashboard(t *testing.T) {
	ref := time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)
	yesterday := ref.Add(-24 * time.Hour)

	s := NewSession()
	s.Replace(&dashboard.Profile{
		Courses: []dashboard.Course{
			{ID: 1, Category: "AI"},
			{ID: 2, Category: "ai"},
			{ID: 3, Category: "Design"},
		},
		EnrolledCourses: []dashboard.EnrolledCourse{
			{Course: dashboard.Course{ID: 1, Category: "AI"}, LastAccessedAt: &yesterday, CertificateIssued: true},
		},
	})

	view := s.Dashboard("", ref)
	assert.Equal(t, 1, view.Stats.TotalEnrolled)
	assert.Equal(t, 1, view.Stats.CertificatesEarned)
	assert.Equal(t, 2, view.Stats.LearningStreak)
	assert.Equal(t, "all", view.ActiveCategory)
	require.Len(t, view.RelatedCourses, 1)
	assert.Equal(t, uint(2), view.RelatedCourses[0].ID)
}
