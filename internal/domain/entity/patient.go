package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient resting status labels. StatusWaiting is never persisted: it is
// derived at read time from today's scheduled appointments and overrides
// the stored label for display only.
const (
	StatusInTreatment = "Em Tratamento"
	StatusConcluded   = "Concluido"
	StatusWaiting     = "Aguardando"
)

// Patient represents a registered clinic patient
type Patient struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null;index" json:"name"`
	MotherName     string     `gorm:"type:varchar(255)" json:"mother_name,omitempty"`
	IndigenousName string     `gorm:"type:varchar(255)" json:"indigenous_name,omitempty"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Village        string     `gorm:"type:varchar(255);not null" json:"village"`
	Ethnicity      string     `gorm:"type:varchar(100)" json:"ethnicity,omitempty"`
	CNS            string     `gorm:"type:varchar(20);index" json:"cns,omitempty"`
	CPF            string     `gorm:"type:varchar(14)" json:"cpf,omitempty"`
	Allergies      string     `gorm:"type:text" json:"allergies,omitempty"`
	Conditions     string     `gorm:"type:text" json:"conditions,omitempty"`
	BloodType      string     `gorm:"type:varchar(3)" json:"blood_type,omitempty"`
	ImageURL       string     `gorm:"type:text" json:"image_url,omitempty"`
	Status         string     `gorm:"type:varchar(50);not null;default:'Em Tratamento'" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
