package contactController_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tourlms/config"
	"tourlms/database"
	"tourlms/middleware"
	"tourlms/models"
	contactRoutes "tourlms/routers/contactRoutes"
	"tourlms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []utils.EmailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg utils.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

type response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*fiber.App, *recordingMailer) {
	t.Helper()

	config.AppConfig = &config.Config{AppName: "Test Academy", JWTKey: "test-secret", AdminEmail: "admin@example.com"}

	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	database.Database = database.DbInstance{Db: db, Contacts: database.NewGormContactStore(db)}

	mailer := &recordingMailer{}
	utils.Mail = mailer

	app := fiber.New()
	contactRoutes.SetupContactRoutes(app)
	return app, mailer
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	user := models.User{Name: role, Email: role + "@example.com", Role: role, Password: "x"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
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

var validForm = map[string]string{
	"name":    "Kwame Mensah",
	"email":   "kwame@example.com",
	"subject": "Course question",
	"message": "When does the next cohort start?",
}

func TestSubmitContactStoresAndEmails(t *testing.T) {
	app, mailer := setup(t)

	status, res := call(t, app, http.MethodPost, "/api/contact", "", validForm)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Status)
	assert.Equal(t, "Your message has been received. We will get back to you soon!", res.Message)

	var data struct {
		ContactID string `json:"contactId"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	assert.NotEmpty(t, data.ContactID)

	stored, err := database.Database.Contacts.List(context.Background(), models.ContactUnread)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, data.ContactID, stored[0].ID)

	require.Len(t, mailer.sent, 2)
	recipients := []string{mailer.sent[0].To[0], mailer.sent[1].To[0]}
	assert.ElementsMatch(t, []string{"admin@example.com", "kwame@example.com"}, recipients)
}

func TestSubmitContactSucceedsWhenMailFails(t *testing.T) {
	app, mailer := setup(t)
	mailer.err = errors.New("smtp down")

	status, res := call(t, app, http.MethodPost, "/api/contact", "", validForm)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, res.Status)

	count, err := database.Database.Contacts.CountByStatus(context.Background(), models.ContactUnread)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubmitContactValidation(t *testing.T) {
	app, mailer := setup(t)

	status, res := call(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "A", "email": "bad", "subject": "s", "message": "short",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, res.Status)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(res.Data, &fields))
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
	assert.Empty(t, mailer.sent)
}

func TestSubmitContactRequiresEveryField(t *testing.T) {
	app, _ := setup(t)

	status, res := call(t, app, http.MethodPost, "/api/contact", "", map[string]string{"message": "   "})
	require.Equal(t, http.StatusBadRequest, status)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(res.Data, &fields))
	for _, f := range []string{"name", "email", "subject", "message"} {
		assert.Contains(t, fields, f)
	}
}

func TestListContactsNeedsAdmin(t *testing.T) {
	app, _ := setup(t)

	status, _ := call(t, app, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/contact", tokenFor(t, models.RoleStudent), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestListContactsNewestFirst(t *testing.T) {
	app, _ := setup(t)
	admin := tokenFor(t, models.RoleAdmin)

	first := validForm
	call(t, app, http.MethodPost, "/api/contact", "", first)
	time.Sleep(10 * time.Millisecond)
	second := map[string]string{"name": "Ama", "email": "ama@example.com", "subject": "Later", "message": "A second message body"}
	call(t, app, http.MethodPost, "/api/contact", "", second)

	status, res := call(t, app, http.MethodGet, "/api/contact", admin, nil)
	require.Equal(t, http.StatusOK, status)

	var messages []models.ContactMessage
	require.NoError(t, json.Unmarshal(res.Data, &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "Later", messages[0].Subject)
}

func TestUpdateContactStatus(t *testing.T) {
	app, _ := setup(t)
	admin := tokenFor(t, models.RoleAdmin)

	_, res := call(t, app, http.MethodPost, "/api/contact", "", validForm)
	var data struct {
		ContactID string `json:"contactId"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))

	status, _ := call(t, app, http.MethodPatch, "/api/contact/"+data.ContactID+"/status", admin, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodPatch, "/api/contact/unknown-id/status", admin, map[string]string{"status": "read"})
	assert.Equal(t, http.StatusNotFound, status)

	status, res = call(t, app, http.MethodPatch, "/api/contact/"+data.ContactID+"/status", admin, map[string]string{"status": "responded"})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Status)

	count, err := database.Database.Contacts.CountByStatus(context.Background(), models.ContactResponded)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
