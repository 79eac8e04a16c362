// Package client talks to the course API on behalf of a learner.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tourlms/services/dashboard"

	"github.com/go-resty/resty/v2"
)

// Client is a thin API client. Every authenticated call takes the bearer token explicitly.
type Client struct {
	http *resty.Client
}

// Option customizes the underlying resty client
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(r *resty.Client) { r.SetTimeout(d) }
}

// WithRetry retries requests that failed without an HTTP answer
func WithRetry(count int, wait time.Duration) Option {
	return func(r *resty.Client) { r.SetRetryCount(count).SetRetryWaitTime(wait) }
}

// New builds a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(r)
	}
	return &Client{http: r}
}

// envelope is the server's {status, message, data} response shape
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginResult is a signed-in identity with its bearer token
type LoginResult struct {
	Token string            `json:"token"`
	User  dashboard.Learner `json:"user"`
}

// CourseList is one page of the catalog
type CourseList struct {
	Courses []dashboard.Course `json:"courses"`
	Total   int64              `json:"total"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	return c.send(c.request(ctx, token, body), method, path, out)
}

func (c *Client) request(ctx context.Context, token string, body interface{}) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	return req
}

func (c *Client) send(req *resty.Request, method, path string, out interface{}) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	var env envelope
	if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil && !resp.IsError() {
		return fmt.Errorf("decode %s %s: %w", method, path, jsonErr)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
		if len(env.Data) > 0 {
			// validation failures carry a field map, other errors carry null
			_ = json.Unmarshal(env.Data, &apiErr.Fields)
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCourses fetches the published catalog with the caller's enrollment flags
func (c *Client) ListCourses(ctx context.Context, token string) ([]dashboard.Course, error) {
	var out CourseList
	if err := c.do(ctx, http.MethodGet, "/course/list", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// Enroll enrolls the token's learner in the course
func (c *Client) Enroll(ctx context.Context, courseKey, token string) (*dashboard.EnrolledCourse, error) {
	var out dashboard.EnrolledCourse
	if err := c.do(ctx, http.MethodPost, "/course/"+courseKey+"/enroll", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubscribeToNotifications opts the learner in to course notifications
func (c *Client) SubscribeToNotifications(ctx context.Context, courseKey, token string) error {
	return c.do(ctx, http.MethodPost, "/course/"+courseKey+"/notifications/subscribe", token, nil, nil)
}

// LoadProfile fetches the authoritative learner state
func (c *Client) LoadProfile(ctx context.Context, token string) (*dashboard.Profile, error) {
	var out dashboard.Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the server-rendered dashboard for a category selection
func (c *Client) Dashboard(ctx context.Context, token, category string) (*dashboard.View, error) {
	req := c.request(ctx, token, nil)
	if category != "" {
		req.SetQueryParam("category", category)
	}
	var out dashboard.View
	if err := c.send(req, http.MethodGet, "/user/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
