package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the closed three-value lifecycle of an appointment.
// Scheduled is the only non-terminal state.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a clinical encounter at a specific instant.
// Status transitions: Scheduled -> Cancelled (cancel) and
// Scheduled -> Completed (prescription finalization only). Terminal
// appointments are immutable.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  *uuid.UUID        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Date      time.Time         `gorm:"not null;index" json:"date"`
	Reason    string            `gorm:"type:varchar(255);not null" json:"reason"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor       *User         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescription *Prescription `gorm:"foreignKey:AppointmentID" json:"prescription,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still open
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCompleted checks if the appointment has been finalized
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsTerminal reports whether the appointment has reached a state with no
// outgoing transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// ValidStatus reports whether s is one of the three persisted labels.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}
