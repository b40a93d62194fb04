package apperrors

import (
	"fmt"
	"net/http"
)

/*
Factories and predefined variables for the payment and notification domains.
Repository sentinel errors (gorm.ErrRecordNotFound and friends) get converted
into these at the service layer.
*/

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrPaymentNotFound builds the 404 for a missing payment id.
func ErrPaymentNotFound(paymentID string) *AppError {
	return New(CodeNotFound, "payment", fmt.Sprintf("Payment with ID %s not found", paymentID), http.StatusNotFound)
}

// ErrNotificationNotFound builds the 404 for a missing or inactive admin notification.
func ErrNotificationNotFound(id string) *AppError {
	return New(CodeNotFound, "notification", fmt.Sprintf("Notification with ID %s not found", id), http.StatusNotFound)
}

// ErrInvalidOperation builds a generic invalid-operation 400.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds an invalid-status 400.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrPaymentNotEditable - the 12-hour editable window is over or the payment
// already left PENDING. Gates update, delete and slip re-upload alike.
var ErrPaymentNotEditable = New(
	CodeNotEditable,
	"payment",
	"Payment cannot be edited. Either expired or not pending.",
	http.StatusBadRequest,
)

// ErrPolicyNotPayable - the referenced policy is neither APPROVED nor ACTIVE.
var ErrPolicyNotPayable = New(
	CodeInvalidPolicyState,
	"policy",
	"Policy must be ACTIVE or APPROVED to make payments",
	http.StatusBadRequest,
)

// ErrRejectionCommentRequired - rejecting a payment without an admin comment.
var ErrRejectionCommentRequired = New(
	CodeValidationFailed,
	"payment",
	"Admin comments are required for rejection",
	http.StatusBadRequest,
)

// ErrNotBankSlipPayment - slip upload attempted on an online payment.
var ErrNotBankSlipPayment = New(
	CodeInvalidOperation,
	"payment",
	"Payment method is not bank slip",
	http.StatusBadRequest,
)

// ErrNotificationAccessDenied - a user touching another user's notification copy.
var ErrNotificationAccessDenied = New(
	CodeInvalidOperation,
	"notification",
	"Notification does not belong to this user",
	http.StatusForbidden,
)
