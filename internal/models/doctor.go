package models

// Doctor represents the doctors table. The Availability column holds the
// doctor's bookable window as a rule string, e.g. "Mon-Fri, 9 AM - 5 PM",
// parsed by the schedule package.
type Doctor struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Specialization string `gorm:"size:100" json:"specialization"`
	Phone          string `gorm:"size:30" json:"phone"`
	Availability   string `gorm:"size:120" json:"availability"`

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}
