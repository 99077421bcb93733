package models

import "time"

// AppointmentStatus is the closed set of appointment states.
// Scheduled is initial; Completed and Cancelled are terminal.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Terminal reports whether no further transition is defined out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment links one Patient and one Doctor at a point in time. It is
// the aggregate root for scheduling: its Treatment and Payment records
// live and die with it.
type Appointment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	PatientID       uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint              `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"not null" json:"appointment_date"`
	Status          AppointmentStatus `gorm:"type:enum('Scheduled','Completed','Cancelled');default:'Scheduled'" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes"`

	Patient   *Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    *Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"treatment,omitempty"`
	Payment   *Payment   `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
