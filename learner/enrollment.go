package learner

import (
	"context"
	"errors"
	"sync"

	"tourlms/client"
	"tourlms/services/dashboard"

	"github.com/rs/zerolog"
)

// State is the enrollment workflow state
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

const (
	loginPath = "/login"

	enrollSuccessTitle       = "Enrollment successful!"
	enrollSuccessDescription = "You have been enrolled in this course. You can now access all course materials."
	enrollFailureTitle       = "Enrollment failed"
	enrollFailureFallback    = "Something went wrong. Please try again."
)

var (
	// ErrBusy is returned by Confirm while another enrollment is in flight
	ErrBusy = errors.New("enrollment already in progress")
	// ErrNotSignedIn is returned by Confirm without an identity
	ErrNotSignedIn = errors.New("not signed in")
)

// API is the part of the course API the workflow calls
type API interface {
	Enroll(ctx context.Context, courseKey, token string) (*dashboard.EnrolledCourse, error)
	SubscribeToNotifications(ctx context.Context, courseKey, token string) error
	LoadProfile(ctx context.Context, token string) (*dashboard.Profile, error)
}

var _ API = (*client.Client)(nil)

type ToastVariant string

const (
	ToastDefault     ToastVariant = "default"
	ToastDestructive ToastVariant = "destructive"
)

// Toast is a transient notification
type Toast struct {
	Title       string
	Description string
	Variant     ToastVariant
}

type Notifier interface {
	Notify(Toast)
}

// Navigator changes the current view. from is the path to come back to, or "".
type Navigator interface {
	Navigate(path, from string)
}

// Dialog is the enrollment confirmation dialog
type Dialog interface {
	Open()
	Close()
}

// CoursePath is the public page of a course
func CoursePath(key string) string { return "/courses/" + key }

// ContentPath is the learner's content view of a course
func ContentPath(key string) string { return "/student/courses/" + key }

// EnrollmentController runs the enroll button and the confirmation dialog
type EnrollmentController struct {
	session *Session
	api     API
	notify  Notifier
	nav     Navigator
	dialog  Dialog
	log     zerolog.Logger

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// ControllerOption customizes an EnrollmentController
type ControllerOption func(*EnrollmentController)

// WithLogger sets the logger for best-effort failures
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *EnrollmentController) { c.log = l }
}

// WithStateListener is called on every state transition
func WithStateListener(fn func(State)) ControllerOption {
	return func(c *EnrollmentController) { c.onChange = fn }
}

func NewEnrollmentController(session *Session, api API, notify Notifier, nav Navigator, dialog Dialog, opts ...ControllerOption) *EnrollmentController {
	c := &EnrollmentController{
		session: session,
		api:     api,
		notify:  notify,
		nav:     nav,
		dialog:  dialog,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current workflow state
func (c *EnrollmentController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *EnrollmentController) setState(s State) {
	c.mu.Lock()
	c.state = s
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

// Open handles the enroll button: sign in first, go straight to the content
// when already enrolled, otherwise ask for confirmation.
func (c *EnrollmentController) Open(course dashboard.Course) {
	user, ok := c.session.Identity()
	if !ok {
		c.nav.Navigate(loginPath, CoursePath(course.Key))
		return
	}
	if c.session.IsEnrolled(course, user.ID) {
		c.nav.Navigate(ContentPath(course.Key), "")
		return
	}
	c.dialog.Open()
}

// Confirm enrolls the learner in course. Only the enroll call can fail the
// workflow; the notification subscription and the profile reload are best-effort.
func (c *EnrollmentController) Confirm(ctx context.Context, course dashboard.Course) error {
	user, ok := c.session.Identity()
	if !ok {
		c.nav.Navigate(loginPath, CoursePath(course.Key))
		return ErrNotSignedIn
	}
	token := c.session.Token()

	if !c.begin() {
		return ErrBusy
	}

	if _, err := c.api.Enroll(ctx, course.Key, token); err != nil {
		c.fail(course, err)
		return err
	}

	if err := c.api.SubscribeToNotifications(ctx, course.Key, token); err != nil {
		c.log.Warn().Err(err).Str("course", course.Key).Msg("notification subscribe failed")
	}

	c.notify.Notify(Toast{Title: enrollSuccessTitle, Description: enrollSuccessDescription, Variant: ToastDefault})
	c.dialog.Close()
	c.session.PatchEnrollment(course.ID, user.ID)

	profile, err := c.api.LoadProfile(ctx, token)
	if err != nil {
		c.log.Warn().Err(err).Str("course", course.Key).Msg("profile reload failed, keeping local patch")
	} else if profile != nil {
		c.session.Replace(profile)
	}

	c.nav.Navigate(ContentPath(course.Key), "")
	c.setState(Succeeded)
	c.setState(Idle)
	return nil
}

// begin moves Idle to Submitting atomically
func (c *EnrollmentController) begin() bool {
	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		return false
	}
	c.state = Submitting
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(Submitting)
	}
	return true
}

func (c *EnrollmentController) fail(course dashboard.Course, err error) {
	msg := client.ServerMessage(err)
	if msg == "" {
		msg = enrollFailureFallback
	}
	c.log.Error().Err(err).Str("course", course.Key).Msg("enrollment failed")
	c.notify.Notify(Toast{Title: enrollFailureTitle, Description: msg, Variant: ToastDestructive})

	if errors.Is(err, client.ErrUnauthorized) {
		c.nav.Navigate(loginPath, CoursePath(course.Key))
	}

	c.setState(Failed)
	c.setState(Idle)
}
