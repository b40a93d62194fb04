package models

import (
	"time"
)

// Payment is one monthly premium submission. It is created PENDING, may be
// edited by its owner for 12 hours after submission, and is settled exactly
// once by an admin approve/reject.
type Payment struct {
	BaseModel
	PolicyID string  `gorm:"type:uuid;not null;index"`
	Policy   *Policy `gorm:"foreignKey:PolicyID"`

	// Snapshot of the submitting user, denormalized at submission time.
	UserID    string `gorm:"index"`
	UserName  string
	UserEmail string

	PaymentMonth  string        `gorm:"not null"` // free-text label, e.g. "January"
	Amount        float64       `gorm:"not null"`
	PaymentMethod PaymentMethod `gorm:"not null"`
	Status        PaymentStatus `gorm:"not null;index"`

	SubmittedDate *time.Time
	ExpiryTime    *time.Time // submitted + 12h, set once at creation
	ApprovedDate  *time.Time
	AdminComments string

	BankSlipDetails      *BankSlipDetails      `gorm:"foreignKey:PaymentID"`
	OnlinePaymentDetails *OnlinePaymentDetails `gorm:"foreignKey:PaymentID"`
}

// BankSlipDetails carries the offline deposit evidence for BANK_SLIP payments.
type BankSlipDetails struct {
	BaseModel
	PaymentID         string `gorm:"type:uuid;not null;uniqueIndex"`
	BankName          string
	Branch            string
	DepositDate       *time.Time
	ReferenceNumber   string
	DepositorName     string
	BankSlipImagePath string
}

// OnlinePaymentDetails carries the card evidence plus the simulated processor
// outcome for ONLINE_PAYMENT payments.
type OnlinePaymentDetails struct {
	BaseModel
	PaymentID         string `gorm:"type:uuid;not null;uniqueIndex"`
	CardholderName    string
	CardNumber        string
	ExpirationDate    string
	CVC               string `gorm:"column:cvc"`
	TransactionID     string
	PaymentSuccessful bool `gorm:"default:false"`
}
