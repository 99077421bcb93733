package models

// BloodGroups lists the 8 standard ABO/Rh combinations accepted at
// registration.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodGroup reports whether bg is one of the standard combinations.
func ValidBloodGroup(bg string) bool {
	for _, g := range BloodGroups {
		if bg == g {
			return true
		}
	}
	return false
}

// Patient represents the patients table
type Patient struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Age        int    `json:"age"`
	Gender     string `gorm:"size:10" json:"gender"`
	BloodGroup string `gorm:"size:5" json:"blood_group"`
	Phone      string `gorm:"size:20" json:"phone"`
	Address    string `gorm:"type:text" json:"address"`

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
