package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"tourlms/config"
	"tourlms/database"
	"tourlms/middleware"
	"tourlms/models"
	courseModels "tourlms/models/course"
	courseRoutes "tourlms/routers/courseRoutes"
	"tourlms/services/dashboard"
	"tourlms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopMailer struct {
	mu   sync.Mutex
	sent []utils.EmailMessage
}

func (m *nopMailer) Send(_ context.Context, msg utils.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type account struct {
	user  models.User
	token string
}

func setup(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{AppName: "Test Academy", JWTKey: "test-secret", AdminEmail: "admin@example.com"}

	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	database.Database = database.DbInstance{Db: db, Contacts: database.NewGormContactStore(db)}
	utils.Mail = &nopMailer{}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

func newAccount(t *testing.T, name, role string) account {
	t.Helper()
	user := models.User{Name: name, Email: name + "@example.com", Role: role, Password: "x"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return account{user: user, token: token}
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

// publishedCourse creates a course with two modules of one and two items
func publishedCourse(t *testing.T, app *fiber.App, owner account, title, category string) courseModels.Course {
	t.Helper()

	status, res := call(t, app, http.MethodPost, "/admin/course/create", owner.token, map[string]string{
		"title": title, "description": "A practical course", "category": category,
	})
	require.Equal(t, http.StatusCreated, status, res.Message)
	var course courseModels.Course
	decode(t, res.Data, &course)
	require.NotEmpty(t, course.Key)

	modules := []map[string]interface{}{
		{"title": "Basics", "contents": []map[string]string{{"title": "Welcome", "body": "Hello"}}},
		{"title": "Deep dive", "contents": []map[string]string{
			{"title": "Part 1", "body": "..."},
			{"title": "Part 2", "content_type": "video", "video_url": "https://video.example/2"},
		}},
	}
	for _, m := range modules {
		status, res = call(t, app, http.MethodPost, "/admin/course/"+course.Key+"/module", owner.token, m)
		require.Equal(t, http.StatusCreated, status, res.Message)
	}

	status, res = call(t, app, http.MethodPost, "/admin/course/"+course.Key+"/publish", owner.token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	return course
}

func TestStudentCannotManageCourses(t *testing.T) {
	app := setup(t)
	student := newAccount(t, "student", models.RoleStudent)

	status, _ := call(t, app, http.MethodPost, "/admin/course/create", student.token, map[string]string{
		"title": "Nope", "description": "d", "category": "AI",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestFacilitatorCannotEditOthersCourse(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	other := newAccount(t, "other", models.RoleFacilitator)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")

	status, _ := call(t, app, http.MethodPost, "/admin/course/"+course.Key+"/publish", other.token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCreateCourseValidation(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)

	status, res := call(t, app, http.MethodPost, "/admin/course/create", owner.token, map[string]string{"title": "AI"})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	var fields map[string]string
	decode(t, res.Data, &fields)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "category")
}

func TestCatalogHidesDraftsAndFlagsEnrollment(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)

	course := publishedCourse(t, app, owner, "Intro to AI", "AI")
	call(t, app, http.MethodPost, "/admin/course/create", owner.token, map[string]string{
		"title": "Draft course", "description": "later", "category": "AI",
	})

	status, res := call(t, app, http.MethodGet, "/course/list", student.token, nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Courses []dashboard.Course `json:"courses"`
		Total   int64              `json:"total"`
	}
	decode(t, res.Data, &list)
	require.Len(t, list.Courses, 1)
	assert.Equal(t, int64(1), list.Total)
	assert.False(t, list.Courses[0].IsEnrolled)

	status, _ = call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)
	require.Equal(t, http.StatusOK, status)

	_, res = call(t, app, http.MethodGet, "/course/list", student.token, nil)
	decode(t, res.Data, &list)
	assert.True(t, list.Courses[0].IsEnrolled)
	assert.Equal(t, 1, list.Courses[0].Enrolled)
	assert.Equal(t, []uint{student.user.ID}, list.Courses[0].EnrolledStudents)
}

func TestCatalogPaginationDefaults(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)
	for _, title := range []string{"One", "Two", "Three"} {
		publishedCourse(t, app, owner, title, "AI")
	}

	type page struct {
		Courses []dashboard.Course `json:"courses"`
		Total   int64              `json:"total"`
		Page    int                `json:"page"`
		Limit   int                `json:"limit"`
	}

	status, res := call(t, app, http.MethodGet, "/course/list?limit=2", student.token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	var got page
	decode(t, res.Data, &got)
	assert.Len(t, got.Courses, 2)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 2, got.Limit)
	assert.Equal(t, int64(3), got.Total)

	status, res = call(t, app, http.MethodGet, "/course/list?page=2", student.token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	got = page{}
	decode(t, res.Data, &got)
	assert.Empty(t, got.Courses)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 20, got.Limit)
}

func TestEnrollInCourse(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")

	status, res := call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)

	var enrolled dashboard.EnrolledCourse
	decode(t, res.Data, &enrolled)
	assert.Equal(t, 1, enrolled.Enrolled)
	assert.True(t, enrolled.IsEnrolled)
	assert.Equal(t, 0, enrolled.Progress)
	assert.Equal(t, "Basics", enrolled.NextModule)
	require.Len(t, enrolled.Enrollment.ModuleProgress, 2)
	assert.Len(t, enrolled.Enrollment.ModuleProgress[1].ContentProgress, 2)

	status, res = call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already enrolled in this course!", res.Message)

	status, _ = call(t, app, http.MethodPost, "/course/missing/enroll", student.token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestConcurrentEnrollmentsKeepRosterConsistent(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")

	students := make([]account, 5)
	for i := range students {
		students[i] = newAccount(t, fmt.Sprintf("student%d", i), models.RoleStudent)
	}

	var wg sync.WaitGroup
	codes := make([]int, len(students))
	for i, s := range students {
		wg.Add(1)
		go func(i int, s account) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/course/"+course.Key+"/enroll", nil)
			req.Header.Set("Authorization", "Bearer "+s.token)
			resp, err := app.Test(req, -1)
			if err == nil {
				codes[i] = resp.StatusCode
				resp.Body.Close()
			}
		}(i, s)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	var stored courseModels.Course
	require.NoError(t, database.Database.Db.First(&stored, course.ID).Error)
	assert.Equal(t, len(students), stored.Enrolled)
	assert.Len(t, stored.EnrolledStudents, len(students))
	for _, s := range students {
		assert.True(t, stored.HasStudent(s.user.ID))
	}
}

func TestDuplicateEnrollmentRowRejected(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")

	status, res := call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)

	dup := courseModels.Enrollment{UserID: student.user.ID, CourseID: course.ID, Status: courseModels.EnrollmentEnrolled}
	err := database.Database.Db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSubscribeToNotifications(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")

	status, _ := call(t, app, http.MethodPost, "/course/"+course.Key+"/notifications/subscribe", student.token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)
	for i := 0; i < 2; i++ {
		status, res := call(t, app, http.MethodPost, "/course/"+course.Key+"/notifications/subscribe", student.token, nil)
		require.Equal(t, http.StatusOK, status, res.Message)
	}

	var count int64
	require.NoError(t, database.Database.Db.Model(&courseModels.NotificationSubscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkContentCompleteUpdatesProgressAndDashboard(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")
	publishedCourse(t, app, owner, "Applied AI", "ai")
	publishedCourse(t, app, owner, "Typography", "Design")

	_, res := call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)
	var enrolled dashboard.EnrolledCourse
	decode(t, res.Data, &enrolled)
	firstContent := enrolled.Enrollment.ModuleProgress[0].ContentProgress[0].ContentID

	status, res := call(t, app, http.MethodPost, fmt.Sprintf("/course/%s/content/%s/complete", course.Key, firstContent), student.token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	decode(t, res.Data, &enrolled)
	assert.Equal(t, 33, enrolled.Progress)
	assert.Equal(t, "Deep dive", enrolled.NextModule)
	require.NotNil(t, enrolled.LastAccessedAt)
	assert.True(t, enrolled.Enrollment.ModuleProgress[0].ContentProgress[0].Completed)

	status, _ = call(t, app, http.MethodPost, "/course/"+course.Key+"/content/99999/complete", student.token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, res = call(t, app, http.MethodGet, "/user/dashboard", student.token, nil)
	require.Equal(t, http.StatusOK, status)
	var view dashboard.View
	decode(t, res.Data, &view)
	assert.Equal(t, 1, view.Stats.TotalEnrolled)
	assert.Equal(t, 2, view.Stats.LearningStreak)
	assert.Equal(t, dashboard.LearningGoals{Completed: 1, Total: 4}, view.Stats.LearningGoals)
	assert.Equal(t, []string{"ai"}, view.Categories)
	assert.Equal(t, dashboard.ButtonGroup, view.CategoryControl)
	require.Len(t, view.RelatedCourses, 1)
	assert.Equal(t, "Applied AI", view.RelatedCourses[0].Title)
	require.Len(t, view.RecentActivity, 1)
	assert.Equal(t, "Intro to AI", view.RecentActivity[0].CourseTitle)
	assert.Equal(t, firstContent, view.RecentActivity[0].ContentTitle)
	assert.Equal(t, "Today", view.RecentActivity[0].When)

	status, res = call(t, app, http.MethodGet, "/user/dashboard?category=design", student.token, nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, res.Data, &view)
	assert.Equal(t, "design", view.ActiveCategory)
	assert.Empty(t, view.Courses)
}

func TestUserProfile(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	student := newAccount(t, "student", models.RoleStudent)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")
	publishedCourse(t, app, owner, "Typography", "Design")
	call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)

	status, res := call(t, app, http.MethodGet, "/user/profile", student.token, nil)
	require.Equal(t, http.StatusOK, status)

	var profile dashboard.Profile
	decode(t, res.Data, &profile)
	assert.Equal(t, student.user.ID, profile.User.ID)
	assert.Len(t, profile.Courses, 2)
	require.Len(t, profile.EnrolledCourses, 1)
	assert.Equal(t, course.Key, profile.EnrolledCourses[0].Key)
	assert.Equal(t, "owner", profile.EnrolledCourses[0].FacilitatorName)
}

func TestIssueCertificateAndAdminStats(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	admin := newAccount(t, "admin", models.RoleAdmin)
	student := newAccount(t, "student", models.RoleStudent)
	course := publishedCourse(t, app, owner, "Intro to AI", "AI")

	certPath := fmt.Sprintf("/admin/course/%s/certificate/%d", course.Key, student.user.ID)

	status, _ := call(t, app, http.MethodPost, certPath, owner.token, nil)
	assert.Equal(t, http.StatusNotFound, status, "not enrolled yet")

	call(t, app, http.MethodPost, "/course/"+course.Key+"/enroll", student.token, nil)

	status, res := call(t, app, http.MethodPost, certPath, owner.token, nil)
	require.Equal(t, http.StatusCreated, status, res.Message)
	var cert courseModels.Certificate
	decode(t, res.Data, &cert)
	assert.Regexp(t, `^AI-\d{8}-[0-9A-F]{8}$`, cert.CertificateNumber)

	status, _ = call(t, app, http.MethodPost, certPath, owner.token, nil)
	assert.Equal(t, http.StatusConflict, status)

	_, res = call(t, app, http.MethodGet, "/user/profile", student.token, nil)
	var profile dashboard.Profile
	decode(t, res.Data, &profile)
	require.Len(t, profile.EnrolledCourses, 1)
	assert.True(t, profile.EnrolledCourses[0].CertificateIssued)

	status, _ = call(t, app, http.MethodGet, "/admin/dashboard/stats", owner.token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	require.NoError(t, database.Database.Contacts.Create(context.Background(), &models.ContactMessage{
		Name: "Ama", Email: "ama@example.com", Subject: "Hi", Message: "Hello there team",
	}))

	status, res = call(t, app, http.MethodGet, "/admin/dashboard/stats", admin.token, nil)
	require.Equal(t, http.StatusOK, status)
	var stats struct {
		TotalUsers        int64                     `json:"totalUsers"`
		TotalEnrollments  int64                     `json:"totalEnrollments"`
		TotalCertificates int64                     `json:"totalCertificates"`
		PublishedCourses  int64                     `json:"publishedCourses"`
		UnreadContacts    int64                     `json:"unreadContacts"`
		RecentEnrollments []courseModels.Enrollment `json:"recentEnrollments"`
	}
	decode(t, res.Data, &stats)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalEnrollments)
	assert.Equal(t, int64(1), stats.TotalCertificates)
	assert.Equal(t, int64(1), stats.PublishedCourses)
	assert.Equal(t, int64(1), stats.UnreadContacts)
	assert.Len(t, stats.RecentEnrollments, 1)
}

func TestFacilitatorCourses(t *testing.T) {
	app := setup(t)
	owner := newAccount(t, "owner", models.RoleFacilitator)
	publishedCourse(t, app, owner, "Intro to AI", "AI")

	status, res := call(t, app, http.MethodGet, "/facilitator/courses", owner.token, nil)
	require.Equal(t, http.StatusOK, status)
	var courses []courseModels.Course
	decode(t, res.Data, &courses)
	require.Len(t, courses, 1)
	assert.True(t, courses[0].IsPublished)
}
