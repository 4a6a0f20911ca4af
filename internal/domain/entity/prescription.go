package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PrescriptionItemType distinguishes conventional pharmaceuticals from
// traditional/herbal remedies.
type PrescriptionItemType string

const (
	ItemTypeAllopathic  PrescriptionItemType = "Allopathic"
	ItemTypeTraditional PrescriptionItemType = "Traditional"
)

// Prescription is the clinical outcome record of one appointment.
// Exactly one prescription may exist per appointment; creating it drives
// the appointment to Completed inside the same transaction.
type Prescription struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	DoctorID      *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	Diagnosis     string     `gorm:"type:text" json:"diagnosis,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment        `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Doctor      *User              `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Items       []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionItem is one line of a prescription. Duration stays free text
// for display; Ongoing is the structured open-ended flag computed once at
// write time (the legacy data relied on matching the duration text at
// every read).
type PrescriptionItem struct {
	ID             uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionID uuid.UUID            `gorm:"type:uuid;not null;index" json:"prescription_id"`
	Type           PrescriptionItemType `gorm:"type:varchar(20);not null" json:"type"`
	Name           string               `gorm:"type:varchar(255);not null" json:"name"`
	Dosage         string               `gorm:"type:varchar(255)" json:"dosage,omitempty"`
	Frequency      string               `gorm:"type:varchar(255)" json:"frequency,omitempty"`
	Duration       string               `gorm:"type:varchar(255)" json:"duration,omitempty"`
	EndDate        *time.Time           `gorm:"type:date;index" json:"end_date,omitempty"`
	Ongoing        bool                 `gorm:"not null;default:false;index" json:"ongoing"`
	CatalogItemID  *uuid.UUID           `gorm:"type:uuid" json:"catalog_item_id,omitempty"`
	CreatedAt      time.Time            `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	CatalogItem *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}

// continuous-duration synonyms seen in legacy prescriptions
var continuousMarkers = []string{"contínuo", "continuo", "contínua", "continua", "continuous"}

// IsContinuousDuration reports whether a free-text duration describes an
// open-ended regimen.
func IsContinuousDuration(duration string) bool {
	lowered := strings.ToLower(duration)
	for _, marker := range continuousMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// IsActiveOn reports whether the item counts as an active treatment on the
// given day. Either optional field may be absent: an ongoing regimen never
// expires, an end-dated one is active through its end date inclusive.
// This is the reference implementation of the active-treatments SQL filter
// in the prescription repository; keep the two in sync.
func (i *PrescriptionItem) IsActiveOn(day time.Time) bool {
	if i.Ongoing {
		return true
	}
	if i.EndDate == nil {
		return false
	}
	y1, m1, d1 := i.EndDate.Date()
	y2, m2, d2 := day.Date()
	endDay := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	queryDay := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return !endDay.Before(queryDay)
}

// ActiveTreatment is the read model for a patient's current regimen line,
// joined with the prescribing context.
type ActiveTreatment struct {
	ID         uuid.UUID            `json:"id"`
	Type       PrescriptionItemType `json:"type"`
	Name       string               `json:"name"`
	Dosage     string               `json:"dosage,omitempty"`
	Frequency  string               `json:"frequency,omitempty"`
	Duration   string               `json:"duration,omitempty"`
	EndDate    *time.Time           `json:"end_date,omitempty"`
	Ongoing    bool                 `json:"ongoing"`
	StartDate  time.Time            `json:"start_date"`
	DoctorName string               `json:"doctor_name,omitempty"`
}
