package models

import "time"

// PaymentStatus is the closed set of payment states.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Payment represents the payments table. A payment is created pending by
// the admin and flipped to paid when the appointment's treatment is saved.
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	AppointmentID uint          `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"type:enum('pending','paid');default:'pending'" json:"status"`
	BillingDate   time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"billing_date"`
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}
