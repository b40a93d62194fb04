package models

type PolicyStatus string
type PaymentStatus string
type PaymentMethod string
type NotificationType string
type PriorityLevel string
type TargetAudience string
type NotificationStatus string

const (
	PolicyStatusPending  PolicyStatus = "PENDING"
	PolicyStatusApproved PolicyStatus = "APPROVED"
	PolicyStatusActive   PolicyStatus = "ACTIVE"
	PolicyStatusRejected PolicyStatus = "REJECTED"
	PolicyStatusExpired  PolicyStatus = "EXPIRED"

	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRejected PaymentStatus = "REJECTED"

	PaymentMethodBankSlip PaymentMethod = "BANK_SLIP"
	PaymentMethodOnline   PaymentMethod = "ONLINE_PAYMENT"

	NotificationTypeGeneral     NotificationType = "GENERAL"
	NotificationTypeUpdate      NotificationType = "UPDATE"
	NotificationTypePromotion   NotificationType = "PROMOTION"
	NotificationTypeMaintenance NotificationType = "MAINTENANCE"
	NotificationTypeSecurity    NotificationType = "SECURITY"

	PriorityLow    PriorityLevel = "LOW"
	PriorityMedium PriorityLevel = "MEDIUM"
	PriorityHigh   PriorityLevel = "HIGH"
	PriorityUrgent PriorityLevel = "URGENT"

	TargetAll      TargetAudience = "ALL"
	TargetActive   TargetAudience = "ACTIVE"
	TargetInactive TargetAudience = "INACTIVE"
	TargetPremium  TargetAudience = "PREMIUM"
	TargetNew      TargetAudience = "NEW"

	NotificationStatusDraft     NotificationStatus = "DRAFT"
	NotificationStatusScheduled NotificationStatus = "SCHEDULED"
	NotificationStatusSent      NotificationStatus = "SENT"
)

// ValidPaymentStatus reports whether s names a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// ValidTargetAudience reports whether t names a known audience category.
func ValidTargetAudience(t TargetAudience) bool {
	switch t {
	case TargetAll, TargetActive, TargetInactive, TargetPremium, TargetNew:
		return true
	}
	return false
}
