package models

import "time"

// Treatment holds the diagnosis and prescription recorded against a
// completed appointment. At most one per appointment.
type Treatment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis"`
	Prescription  string    `gorm:"type:text" json:"prescription"`
	Notes         string    `gorm:"type:text" json:"notes"`
	RecordDate    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"record_date"`
}

// TableName specifies the table name for Treatment model
func (Treatment) TableName() string {
	return "treatments"
}
