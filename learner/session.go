// Package learner holds the signed-in learner's client-side state and the
// enrollment workflow that mutates it.
package learner

import (
	"sync"
	"time"

	"tourlms/services/dashboard"
)

// CacheTag says where the course cache last came from
type CacheTag int

const (
	CacheEmpty CacheTag = iota
	// CacheOptimistic means a local patch has been applied since the last server load
	CacheOptimistic
	CacheAuthoritative
)

func (t CacheTag) String() string {
	switch t {
	case CacheOptimistic:
		return "optimistic"
	case CacheAuthoritative:
		return "authoritative"
	default:
		return "empty"
	}
}

// Session is the learner's application state: identity, token and the
// course caches. It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	identity *dashboard.Learner
	token    string
	catalog  []dashboard.Course
	enrolled []dashboard.EnrolledCourse
	tag      CacheTag
}

func NewSession() *Session {
	return &Session{}
}

// SignIn stores the identity and bearer token
func (s *Session) SignIn(user dashboard.Learner, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &user
	s.token = token
}

// SignOut forgets the identity and every cached course
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.token = ""
	s.catalog = nil
	s.enrolled = nil
	s.tag = CacheEmpty
}

// Identity returns the signed-in learner, if any
func (s *Session) Identity() (dashboard.Learner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return dashboard.Learner{}, false
	}
	return *s.identity, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Catalog returns a copy of the cached catalog and its tag
func (s *Session) Catalog() ([]dashboard.Course, CacheTag) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dashboard.Course, len(s.catalog))
	for i, c := range s.catalog {
		out[i] = copyCourse(c)
	}
	return out, s.tag
}

// Enrolled returns a copy of the cached enrolled courses
func (s *Session) Enrolled() []dashboard.EnrolledCourse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dashboard.EnrolledCourse, len(s.enrolled))
	copy(out, s.enrolled)
	return out
}

// SetCatalog stores a catalog fetched from the server
func (s *Session) SetCatalog(courses []dashboard.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = courses
	s.tag = CacheAuthoritative
}

// IsEnrolled reports whether learnerID is known to be enrolled in course
func (s *Session) IsEnrolled(course dashboard.Course, learnerID uint) bool {
	if course.IsEnrolled || containsID(course.EnrolledStudents, learnerID) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.enrolled {
		if e.ID == course.ID {
			return true
		}
	}
	return false
}

// PatchEnrollment applies the local result of a successful enroll to the
// catalog entry with courseID. It reports whether an entry was found.
func (s *Session) PatchEnrollment(courseID, learnerID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.catalog {
		c := &s.catalog[i]
		if c.ID != courseID {
			continue
		}
		if !containsID(c.EnrolledStudents, learnerID) {
			c.Enrolled++
			c.EnrolledStudents = append(append([]uint(nil), c.EnrolledStudents...), learnerID)
		}
		c.IsEnrolled = true
		s.tag = CacheOptimistic
		return true
	}
	return false
}

// Replace swaps in the server's profile wholesale, dropping any local patch
func (s *Session) Replace(profile *dashboard.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := profile.User
	s.identity = &user
	s.catalog = profile.Courses
	s.enrolled = profile.EnrolledCourses
	s.tag = CacheAuthoritative
}

// Dashboard recomputes the dashboard from the cached state
func (s *Session) Dashboard(selected string, ref time.Time) dashboard.View {
	catalog, _ := s.Catalog()
	return dashboard.Build(s.Enrolled(), catalog, selected, ref)
}

func copyCourse(c dashboard.Course) dashboard.Course {
	c.EnrolledStudents = append([]uint(nil), c.EnrolledStudents...)
	return c
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
