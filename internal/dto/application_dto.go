package dto

import (
	"time"

	"github.com/jobtrackhq/jobtracker-api/internal/models"
)

// ApplicationRequest is the write shape for create and update. There is no
// owner field: ownership comes from the bearer token, never the body.
type ApplicationRequest struct {
	CompanyName string    `json:"companyName" validate:"required,min=2,max=100"`
	Position    string    `json:"position" validate:"required,min=2,max=100"`
	Status      string    `json:"status" validate:"required,oneof=Applied Interview Offer Rejected"`
	DateApplied time.Time `json:"dateApplied" validate:"required"`
}

// ApplicationResponse is the read shape. The owner id is intentionally not
// exposed.
type ApplicationResponse struct {
	ID          uint      `json:"id"`
	CompanyName string    `json:"companyName"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
	DateApplied time.Time `json:"dateApplied"`
}

func (r *ApplicationRequest) ToModel() models.JobApplication {
	return models.JobApplication{
		CompanyName: r.CompanyName,
		Position:    r.Position,
		Status:      r.Status,
		DateApplied: r.DateApplied,
	}
}

func NewApplicationResponse(app *models.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		CompanyName: app.CompanyName,
		Position:    app.Position,
		Status:      app.Status,
		DateApplied: app.DateApplied,
	}
}

func NewApplicationListResponse(apps []models.JobApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, len(apps))
	for i := range apps {
		out[i] = NewApplicationResponse(&apps[i])
	}
	return out
}
