package models

// Policy is the insurance policy a premium payment belongs to. Only APPROVED
// or ACTIVE policies accept payments.
type Policy struct {
	BaseModel
	Name          string       `gorm:"not null"`
	VehicleType   string
	PremiumAmount float64      `gorm:"not null"`
	Status        PolicyStatus `gorm:"not null;index"`
	HolderUserID  string       `gorm:"index"`
}

// Payable reports whether the policy currently accepts premium payments.
func (p *Policy) Payable() bool {
	return p.Status == PolicyStatusApproved || p.Status == PolicyStatusActive
}
