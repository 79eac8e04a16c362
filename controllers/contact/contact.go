package contactController

import (
	"errors"

	"tourlms/config"
	"tourlms/database"
	"tourlms/middleware"
	"tourlms/models"
	"tourlms/utils"
	contactValidator "tourlms/validators/contact"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact stores a contact form message and emails the admin and the sender
func SubmitContact(c *fiber.Ctx) error {
	reqData := c.Locals("validatedContact").(*contactValidator.SubmitContactRequest)

	msg := models.ContactMessage{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Subject: reqData.Subject,
		Message: reqData.Message,
		Status:  models.ContactUnread,
	}

	if err := database.Database.Contacts.Create(c.UserContext(), &msg); err != nil {
		utils.Log.Error().Err(err).Str("email", msg.Email).Msg("store contact message")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit message. Please try again later.", nil)
	}

	// Mail is best-effort, the message is already stored
	if err := utils.SendContactEmails(c.UserContext(), utils.Mail, config.AppConfig.AdminEmail, msg); err != nil {
		utils.Log.Warn().Err(err).Str("contactId", msg.ID).Msg("contact emails not sent")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Your message has been received. We will get back to you soon!", fiber.Map{
		"contactId": msg.ID,
	})
}

// ListContacts returns contact messages newest first
func ListContacts(c *fiber.Ctx) error {
	status, _ := c.Locals("contactStatusFilter").(string)

	messages, err := database.Database.Contacts.List(c.UserContext(), status)
	if err != nil {
		utils.Log.Error().Err(err).Msg("list contact messages")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contact messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contact messages fetched successfully.", messages)
}

// UpdateContactStatus moves a message between unread, read and responded
func UpdateContactStatus(c *fiber.Ctx) error {
	id := c.Locals("contactId").(string)
	reqData := c.Locals("validatedContactStatus").(*contactValidator.UpdateStatusRequest)

	err := database.Database.Contacts.UpdateStatus(c.UserContext(), id, reqData.Status)
	if errors.Is(err, database.ErrContactNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contact message not found!", nil)
	}
	if err != nil {
		utils.Log.Error().Err(err).Str("contactId", id).Msg("update contact status")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update contact status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contact status updated successfully.", fiber.Map{
		"id":     id,
		"status": reqData.Status,
	})
}
