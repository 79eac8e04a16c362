package contactValidator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"tourlms/middleware"
	"tourlms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// The contact form accepts any address with one @ and a dotted domain
var contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return contactEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

// SubmitContactRequest is the public contact form body
type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

// UpdateStatusRequest is the admin status change body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

var fieldMessages = map[string]string{
	"name":    "Name is required",
	"subject": "Subject is required",
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email format"
	case "message":
		if fe.Tag() == "required" {
			return "Message is required"
		}
		return "Message must be at least 10 characters"
	}
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	return "Invalid value"
}

// fieldErrors flattens validator output into a json-field keyed map
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		for _, fe := range ves {
			if _, seen := out[fe.Field()]; !seen {
				out[fe.Field()] = messageFor(fe)
			}
		}
	}
	return out
}

// SubmitContact validator middleware
func SubmitContact() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitContactRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.Subject = strings.TrimSpace(reqData.Subject)
		reqData.Message = strings.TrimSpace(reqData.Message)

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", fieldErrors(err))
		}

		c.Locals("validatedContact", reqData)
		return c.Next()
	}
}

// UpdateContactStatus validator middleware
func UpdateContactStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params("id"))
		if id == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Contact ID is required!", nil)
		}

		reqData := new(UpdateStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.IsValidContactStatus(reqData.Status) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status", fiber.Map{
				"status": "Status must be one of unread, read, responded",
			})
		}

		c.Locals("contactId", id)
		c.Locals("validatedContactStatus", reqData)
		return c.Next()
	}
}

// ContactList validator middleware, ?status= is optional
func ContactList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := strings.TrimSpace(c.Query("status"))
		if status != "" && !models.IsValidContactStatus(status) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
		}
		c.Locals("contactStatusFilter", status)
		return c.Next()
	}
}
