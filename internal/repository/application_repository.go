// Package repository is the only gateway to job-application rows. Every
// method takes the authenticated user id and scopes reads and writes to it;
// records of other users behave exactly like records that do not exist.
package repository

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jobtrackhq/jobtracker-api/internal/apperr"
	"github.com/jobtrackhq/jobtracker-api/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// ListByUser returns all applications owned by the user, most recently
// applied first.
func (r *ApplicationRepository) ListByUser(userID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.
		Where("user_id = ?", userID).
		Order("date_applied DESC").
		Find(&apps).Error
	if err != nil {
		slog.Error("failed to list applications", "user_id", userID, "error", err)
		return nil, apperr.Processing("Error retrieving applications", err)
	}
	return apps, nil
}

// GetByID returns the application only when it exists and the user owns it.
func (r *ApplicationRepository) GetByID(id, userID uint) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Application with ID %d not found", id)
	}
	if err != nil {
		slog.Error("failed to fetch application", "id", id, "user_id", userID, "error", err)
		return nil, apperr.Processing("Error retrieving application", err)
	}
	return &app, nil
}

// Create stamps the owner from the authenticated caller, discarding any
// owner the caller may have supplied, then validates and inserts.
func (r *ApplicationRepository) Create(app *models.JobApplication, userID uint) error {
	app.ID = 0
	app.UserID = userID
	app.Version = 1

	if err := r.validate(app); err != nil {
		return err
	}

	if err := r.db.Create(app).Error; err != nil {
		slog.Error("failed to create application", "user_id", userID, "error", err)
		return apperr.Processing("Error saving the application", err)
	}
	return nil
}

// Update replaces every mutable field of an existing record, keeping its id
// and owner. The write is guarded by the record's version: losing a race
// with a concurrent update affects zero rows and reports a conflict, never
// a silent overwrite or an automatic retry.
func (r *ApplicationRepository) Update(app *models.JobApplication, userID uint) error {
	var existing models.JobApplication
	err := r.db.Where("id = ? AND user_id = ?", app.ID, userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Application with ID %d not found", app.ID)
	}
	if err != nil {
		slog.Error("failed to load application for update", "id", app.ID, "user_id", userID, "error", err)
		return apperr.Processing("Error updating application", err)
	}

	app.UserID = userID
	if err := r.validate(app); err != nil {
		return err
	}

	res := r.db.Model(&models.JobApplication{}).
		Where("id = ? AND user_id = ? AND version = ?", existing.ID, userID, existing.Version).
		Updates(map[string]any{
			"company_name": app.CompanyName,
			"position":     app.Position,
			"status":       app.Status,
			"date_applied": app.DateApplied,
			"version":      existing.Version + 1,
		})
	if res.Error != nil {
		slog.Error("failed to update application", "id", app.ID, "user_id", userID, "error", res.Error)
		return apperr.Processing("Error updating application", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("The record was modified by another user")
	}
	return nil
}

// validate runs every rule and aggregates the failures; it never stops at
// the first violation.
func (r *ApplicationRepository) validate(app *models.JobApplication) error {
	errs := make(map[string][]string)

	if app.DateApplied.After(time.Now().UTC()) {
		errs["DateApplied"] = append(errs["DateApplied"], "Application date cannot be in the future")
	}

	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("user_id = ? AND company_name = ? AND position = ? AND id <> ?",
			app.UserID, app.CompanyName, app.Position, app.ID).
		Count(&count).Error
	if err != nil {
		slog.Error("failed to check for duplicate application", "user_id", app.UserID, "error", err)
		return apperr.Processing("Error validating application", err)
	}
	if count > 0 {
		errs["Application"] = append(errs["Application"], "A similar application already exists")
	}

	if len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}
