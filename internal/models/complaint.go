package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint statuses. A complaint always starts as StatusOpen and only the
// status field ever changes afterwards.
const (
	StatusOpen      = "open"
	StatusHold      = "hold"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ValidStatuses lists every status a complaint may be moved to.
var ValidStatuses = []string{StatusOpen, StatusHold, StatusRejected, StatusCompleted}

// Complaint represents one submitted traffic-violation report.
type Complaint struct {
	// ComplaintID is the public identifier of the report (UUID).
	ComplaintID string `gorm:"primaryKey" json:"complaint_id"`
	// VehicleNo is the plate of the offending vehicle. Required.
	VehicleNo string `gorm:"type:text;not null" json:"vehicle_no"`
	// ViolationType describes the offence (e.g. "signal jump").
	ViolationType string `gorm:"type:text" json:"violation_type"`
	// Location is the free-text offence location supplied by the reporter.
	Location string `gorm:"type:text" json:"location"`
	// Latitude and Longitude are optional device coordinates. They are
	// stored as a pair: either both set or both nil.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// Date and Time of the incident, display-formatted (DD-MM-YYYY, HH:MM).
	Date string `gorm:"type:text" json:"date"`
	Time string `gorm:"type:text" json:"time"`
	// State is the region/state the offence happened in.
	State string `gorm:"type:text" json:"state"`
	// Comment carries any additional remarks from the reporter.
	Comment string `gorm:"type:text" json:"comment"`
	// FilePath points at the uploaded media, relative to the static asset
	// root. Nil when no media was attached or the save failed.
	FilePath *string `gorm:"type:text" json:"file_path"`
	// Status is the triage state, one of ValidStatuses.
	Status string `gorm:"type:text;not null;default:open;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the complaint
// does not carry one yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ComplaintID == "" {
		c.ComplaintID = uuid.New().String()
	}
	return
}

// NormalizeStatus matches s case-insensitively against ValidStatuses and
// returns the canonical lowercase form. ok is false for anything outside
// the enumeration.
func NormalizeStatus(s string) (status string, ok bool) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	for _, v := range ValidStatuses {
		if lowered == v {
			return v, true
		}
	}
	return "", false
}
