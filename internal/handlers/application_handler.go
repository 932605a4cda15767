package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jobtrackhq/jobtracker-api/internal/apperr"
	"github.com/jobtrackhq/jobtracker-api/internal/dto"
	"github.com/jobtrackhq/jobtracker-api/internal/middleware"
	"github.com/jobtrackhq/jobtracker-api/internal/repository"
	"github.com/jobtrackhq/jobtracker-api/internal/validation"
)

type ApplicationHandler struct {
	repo *repository.ApplicationRepository
}

func NewApplicationHandler(repo *repository.ApplicationRepository) *ApplicationHandler {
	return &ApplicationHandler{repo: repo}
}

// List handles GET /applications.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return invalidUserToken(c)
	}

	apps, err := h.repo.ListByUser(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewApplicationListResponse(apps))
}

// Get handles GET /applications/:id.
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return invalidUserToken(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application ID",
		})
	}

	app, err := h.repo.GetByID(uint(id), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewApplicationResponse(app))
}

// Create handles POST /applications.
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return invalidUserToken(c)
	}

	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if errs := validation.Check(&req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Validation failed",
			Errors:  errs,
		})
	}

	app := req.ToModel()
	if err := h.repo.Create(&app, userID); err != nil {
		return h.fail(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/applications/%d", app.ID))
	return c.Status(fiber.StatusCreated).JSON(dto.NewApplicationResponse(&app))
}

// Update handles PUT /applications/:id. A full-field replace; partial
// patches are not supported.
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return invalidUserToken(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application ID",
		})
	}

	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if errs := validation.Check(&req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Validation failed",
			Errors:  errs,
		})
	}

	app := req.ToModel()
	app.ID = uint(id)
	if err := h.repo.Update(&app, userID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps repository error kinds to responses. Processing errors are
// logged with their cause and answered generically.
func (h *ApplicationHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case apperr.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Message: err.Error(),
		})
	case apperr.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Message: err.Error(),
		})
	default:
		if errs, ok := apperr.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Validation error",
				Errors:  errs,
			})
		}
		slog.Error("application request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "An error occurred while processing your request.",
		})
	}
}

func invalidUserToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Message: "Invalid user token",
	})
}
