package dto

import (
	"time"
)

type BankSlipRequest struct {
	BankName        string     `json:"bankName" validate:"required"`
	Branch          string     `json:"branch"`
	DepositDate     *time.Time `json:"depositDate"`
	ReferenceNumber string     `json:"referenceNumber"`
	DepositorName   string     `json:"depositorName"`
}

type OnlinePaymentRequest struct {
	CardholderName string `json:"cardholderName" validate:"required"`
	CardNumber     string `json:"cardNumber" validate:"required,min=12,max=19"`
	ExpirationDate string `json:"expirationDate" validate:"required"`
	CVC            string `json:"cvc" validate:"required,min=3,max=4"`
}

type CreatePaymentRequest struct {
	PolicyID      string                `json:"policyId" validate:"required"`
	UserID        string                `json:"userId" validate:"required"`
	UserName      string                `json:"userName"`
	UserEmail     string                `json:"userEmail" validate:"omitempty,email"`
	PaymentMonth  string                `json:"paymentMonth" validate:"required,payment_month"`
	Amount        float64               `json:"amount" validate:"required,gt=0"`
	PaymentMethod string                `json:"paymentMethod" validate:"required,payment_method"`
	BankSlip      *BankSlipRequest      `json:"bankSlip"`
	OnlinePayment *OnlinePaymentRequest `json:"onlinePayment"`
}

type UpdatePaymentRequest struct {
	PaymentMonth  string                `json:"paymentMonth" validate:"omitempty,payment_month"`
	Amount        float64               `json:"amount" validate:"omitempty,gt=0"`
	PaymentMethod string                `json:"paymentMethod" validate:"omitempty,payment_method"`
	BankSlip      *BankSlipRequest      `json:"bankSlip"`
	OnlinePayment *OnlinePaymentRequest `json:"onlinePayment"`
}

type RejectPaymentRequest struct {
	AdminComments string `json:"adminComments"`
}

type ApprovePaymentRequest struct {
	AdminComments string `json:"adminComments"`
}

type UpdatePaymentStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	AdminComments string `json:"adminComments"`
}

type BulkApproveRequest struct {
	PaymentIDs    []string `json:"paymentIds" validate:"required,min=1"`
	AdminComments string   `json:"adminComments"`
}

type BulkApproveResponse struct {
	ApprovedCount int      `json:"approvedCount"`
	FailedIDs     []string `json:"failedIds"`
}

type BankSlipResponse struct {
	BankName          string     `json:"bankName"`
	Branch            string     `json:"branch,omitempty"`
	DepositDate       *time.Time `json:"depositDate,omitempty"`
	ReferenceNumber   string     `json:"referenceNumber,omitempty"`
	DepositorName     string     `json:"depositorName,omitempty"`
	BankSlipImagePath string     `json:"bankSlipImagePath,omitempty"`
}

type OnlinePaymentResponse struct {
	CardholderName    string `json:"cardholderName"`
	MaskedCardNumber  string `json:"maskedCardNumber"`
	TransactionID     string `json:"transactionId,omitempty"`
	PaymentSuccessful bool   `json:"paymentSuccessful"`
}

type PaymentResponse struct {
	ID            string                 `json:"id"`
	PolicyID      string                 `json:"policyId"`
	PolicyName    string                 `json:"policyName,omitempty"`
	UserID        string                 `json:"userId"`
	UserName      string                 `json:"userName,omitempty"`
	UserEmail     string                 `json:"userEmail,omitempty"`
	PaymentMonth  string                 `json:"paymentMonth"`
	Amount        float64                `json:"amount"`
	PaymentMethod string                 `json:"paymentMethod"`
	Status        string                 `json:"status"`
	SubmittedDate *time.Time             `json:"submittedDate,omitempty"`
	ExpiryTime    *time.Time             `json:"expiryTime,omitempty"`
	ApprovedDate  *time.Time             `json:"approvedDate,omitempty"`
	AdminComments string                 `json:"adminComments,omitempty"`
	CanEdit       bool                   `json:"canEdit"`
	TimeRemaining string                 `json:"timeRemaining"`
	CanApprove    bool                   `json:"canApprove"`
	CanReject     bool                   `json:"canReject"`
	IsExpired     bool                   `json:"isExpired"`
	BankSlip      *BankSlipResponse      `json:"bankSlip,omitempty"`
	OnlinePayment *OnlinePaymentResponse `json:"onlinePayment,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

type MonthPaymentStatus struct {
	Month   string           `json:"month"`
	Paid    bool             `json:"paid"`
	Payment *PaymentResponse `json:"payment,omitempty"`
}

type PolicyWithPaymentsResponse struct {
	PolicyID      string               `json:"policyId"`
	PolicyName    string               `json:"policyName"`
	VehicleType   string               `json:"vehicleType"`
	PremiumAmount float64              `json:"premiumAmount"`
	Status        string               `json:"status"`
	Months        []MonthPaymentStatus `json:"months"`
}

type PaymentStatisticsResponse struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Approved       int64   `json:"approved"`
	Rejected       int64   `json:"rejected"`
	TotalAmount    float64 `json:"totalAmount"`
	ApprovedAmount float64 `json:"approvedAmount"`
}

type BankDetailsResponse struct {
	BankName      string `json:"bankName"`
	Branch        string `json:"branch"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	SwiftCode     string `json:"swiftCode"`
	Reference     string `json:"reference"`
}

// MaskCardNumber hides all but the last four digits of a card number.
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	masked := make([]byte, len(number)-4)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + number[len(number)-4:]
}
