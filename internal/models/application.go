package models

import "time"

// Application statuses form a closed set; anything else is rejected at the
// request boundary.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// JobApplication is a single application record owned by one user. UserID is
// stamped by the repository from the authenticated caller and never taken
// from client input. Version is the optimistic-concurrency token: updates
// that lose a race affect zero rows and surface as a conflict.
type JobApplication struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"not null;size:100" json:"company_name"`
	Position    string    `gorm:"not null;size:100" json:"position"`
	Status      string    `gorm:"not null;size:20" json:"status"`
	DateApplied time.Time `gorm:"not null;index" json:"date_applied"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	Version     int       `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
