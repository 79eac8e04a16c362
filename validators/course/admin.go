package courseValidator

import (
	"strconv"
	"strings"

	"tourlms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the body of a new course. The thumbnail may also
// arrive as a multipart "thumbnail" file.
type CreateCourseRequest struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	Category     string `json:"category" form:"category"`
	ThumbnailURL string `json:"thumbnail_url" form:"thumbnail_url"`
}

// ContentRequest is one content item of a new module
type ContentRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
	VideoURL    string `json:"video_url"`
}

// CreateModuleRequest is a module with its ordered content items
type CreateModuleRequest struct {
	Title    string           `json:"title"`
	Contents []ContentRequest `json:"contents"`
}

var contentTypes = map[string]bool{"TEXT": true, "VIDEO": true, "QUIZ": true}

// CreateCourse validates course creation
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}

		if reqData.Category == "" {
			errors["category"] = "Category is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CreateModule validates a module body for the :key course
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course key is required!", nil)
		}

		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if len(reqData.Contents) == 0 {
			errors["contents"] = "At least one content item is required!"
		}
		for i := range reqData.Contents {
			item := &reqData.Contents[i]
			item.Title = strings.TrimSpace(item.Title)
			item.ContentType = strings.ToUpper(strings.TrimSpace(item.ContentType))
			if item.ContentType == "" {
				item.ContentType = "TEXT"
			}

			field := "contents[" + strconv.Itoa(i) + "]"
			if item.Title == "" {
				errors[field+".title"] = "Title is required!"
			}
			if !contentTypes[item.ContentType] {
				errors[field+".content_type"] = "Content type must be TEXT, VIDEO or QUIZ!"
			}
			if item.ContentType == "VIDEO" && strings.TrimSpace(item.VideoURL) == "" {
				errors[field+".video_url"] = "Video URL is required for video content!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseKey", key)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// IssueCertificate validates :key and :user_id
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course key is required!", nil)
		}

		userID, err := strconv.Atoi(strings.TrimSpace(c.Params("user_id")))
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("courseKey", key)
		c.Locals("certificateUserID", uint(userID))
		return c.Next()
	}
}
