package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jobtrackhq/jobtracker-api/internal/apperr"
	"github.com/jobtrackhq/jobtracker-api/internal/dto"
	"github.com/jobtrackhq/jobtracker-api/internal/services"
	"github.com/jobtrackhq/jobtracker-api/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
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

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errs, ok := apperr.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Validation failed",
				Errors:  errs,
			})
		}
		slog.Error("registration failed", "email", req.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "An error occurred while processing your request.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
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

	resp, err := h.authService.Login(&req)
	if err != nil {
		if apperr.IsUnauthorized(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: err.Error(),
			})
		}
		slog.Error("login failed", "email", req.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "An error occurred while processing your request.",
		})
	}

	return c.JSON(resp)
}
