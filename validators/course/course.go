package courseValidator

import (
	"strconv"
	"strings"

	"tourlms/middleware"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageLimit applies when only ?page= is given
const DefaultPageLimit = 20

// PageRequest is optional pagination for list endpoints
type PageRequest struct {
	Page  *int `query:"page"`
	Limit *int `query:"limit"`
}

// CourseKey validates the :key path parameter
func CourseKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course key is required!", nil)
		}
		c.Locals("courseKey", key)
		return c.Next()
	}
}

// CourseList validates optional page and limit query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PageRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// one pagination parameter implies the default for the other
		if reqData.Page != nil && reqData.Limit == nil {
			limit := DefaultPageLimit
			reqData.Limit = &limit
		}
		if reqData.Limit != nil && reqData.Page == nil {
			page := 1
			reqData.Page = &page
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// MarkContentComplete validates :key and :content_id
func MarkContentComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course key is required!", nil)
		}

		contentID, err := strconv.Atoi(strings.TrimSpace(c.Params("content_id")))
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("courseKey", key)
		c.Locals("contentID", uint(contentID))
		return c.Next()
	}
}

// DashboardQuery reads the optional ?category= selection
func DashboardQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := strings.TrimSpace(c.Query("category"))
		if len(category) > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"category": "Category must be at most 100 characters long!",
			})
		}
		c.Locals("dashboardCategory", category)
		return c.Next()
	}
}
