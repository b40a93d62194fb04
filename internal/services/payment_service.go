package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/internal/storage"
	"insurancelk_backend/pkg/apperrors"
)

// EditWindow is how long a pending payment stays editable after submission.
const EditWindow = 12 * time.Hour

var paymentMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type PaymentService interface {
	CreatePayment(req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(id string) (*dto.PaymentResponse, error)
	UpdatePayment(id string, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	DeletePayment(id string) error
	UploadBankSlip(ctx context.Context, id, originalFilename, contentType string, file io.Reader) (*dto.PaymentResponse, error)

	GetPaymentHistory(userID string) ([]dto.PaymentResponse, error)
	GetPendingPayments(userID string) ([]dto.PaymentResponse, error)
	GetUserPoliciesWithPayments(userID string) ([]dto.PolicyWithPaymentsResponse, error)
	GetBankDetails() *dto.BankDetailsResponse

	GetAllPayments() ([]dto.PaymentResponse, error)
	GetPaymentsByStatus(status string) ([]dto.PaymentResponse, error)
	SearchPayments(criteria repositories.PaymentCriteria) ([]dto.PaymentResponse, error)
	GetStatistics() (*dto.PaymentStatisticsResponse, error)
	ApprovePayment(id, adminComments string) (*dto.PaymentResponse, error)
	RejectPayment(id, adminComments string) (*dto.PaymentResponse, error)
	BulkApprove(ids []string, adminComments string) (*dto.BulkApproveResponse, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	policyRepo  repositories.PolicyRepository
	store       storage.Storage
	authorizer  PaymentAuthorizer

	// one mutex per payment id, so settle and edit cannot interleave
	locks sync.Map
	now   func() time.Time
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	policyRepo repositories.PolicyRepository,
	store storage.Storage,
	authorizer PaymentAuthorizer,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		policyRepo:  policyRepo,
		store:       store,
		authorizer:  authorizer,
		now:         time.Now,
	}
}

func (s *paymentService) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *paymentService) CreatePayment(req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	policy, err := s.policyRepo.FindByID(req.PolicyID)
	if err != nil {
		if errors.Is(err, repositories.ErrPolicyNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "policy",
				fmt.Sprintf("Policy with ID %s not found", req.PolicyID), http.StatusNotFound)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "policy", "Failed to load policy", http.StatusInternalServerError)
	}
	if !policy.Payable() {
		return nil, apperrors.ErrPolicyNotPayable
	}

	now := s.now()
	expiry := now.Add(EditWindow)

	payment := &models.Payment{
		PolicyID:      policy.ID,
		UserID:        req.UserID,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		PaymentMonth:  req.PaymentMonth,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Status:        models.PaymentStatusPending,
		SubmittedDate: &now,
		ExpiryTime:    &expiry,
	}

	switch payment.PaymentMethod {
	case models.PaymentMethodBankSlip:
		if req.BankSlip != nil {
			payment.BankSlipDetails = &models.BankSlipDetails{
				BankName:        req.BankSlip.BankName,
				Branch:          req.BankSlip.Branch,
				DepositDate:     req.BankSlip.DepositDate,
				ReferenceNumber: req.BankSlip.ReferenceNumber,
				DepositorName:   req.BankSlip.DepositorName,
			}
		}
	case models.PaymentMethodOnline:
		if req.OnlinePayment == nil {
			return nil, apperrors.NewBadRequestError("Online payment details are required")
		}
		transactionID, approved := s.authorizer.Authorize(req.Amount)
		payment.OnlinePaymentDetails = &models.OnlinePaymentDetails{
			CardholderName:    req.OnlinePayment.CardholderName,
			CardNumber:        req.OnlinePayment.CardNumber,
			ExpirationDate:    req.OnlinePayment.ExpirationDate,
			CVC:               req.OnlinePayment.CVC,
			TransactionID:     transactionID,
			PaymentSuccessful: approved,
		}
		if !approved {
			// Stored anyway so an admin can review and settle it manually.
			payment.AdminComments = "Online payment authorization failed. Please verify card details."
		}
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to create payment", http.StatusInternalServerError)
	}
	payment.Policy = policy
	return s.toResponse(payment), nil
}

func (s *paymentService) GetPayment(id string) (*dto.PaymentResponse, error) {
	payment, err := s.findPayment(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(payment), nil
}

func (s *paymentService) UpdatePayment(id string, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	unlock := s.lock(id)
	defer unlock()

	payment, err := s.findPayment(id)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(payment) {
		return nil, apperrors.ErrPaymentNotEditable
	}

	if req.PaymentMonth != "" {
		payment.PaymentMonth = req.PaymentMonth
	}
	if req.Amount > 0 {
		payment.Amount = req.Amount
	}
	if req.PaymentMethod != "" {
		payment.PaymentMethod = models.PaymentMethod(req.PaymentMethod)
	}
	if req.BankSlip != nil && payment.PaymentMethod == models.PaymentMethodBankSlip {
		if payment.BankSlipDetails == nil {
			payment.BankSlipDetails = &models.BankSlipDetails{PaymentID: payment.ID}
		}
		payment.BankSlipDetails.BankName = req.BankSlip.BankName
		payment.BankSlipDetails.Branch = req.BankSlip.Branch
		payment.BankSlipDetails.DepositDate = req.BankSlip.DepositDate
		payment.BankSlipDetails.ReferenceNumber = req.BankSlip.ReferenceNumber
		payment.BankSlipDetails.DepositorName = req.BankSlip.DepositorName
	}
	if req.OnlinePayment != nil && payment.PaymentMethod == models.PaymentMethodOnline {
		if payment.OnlinePaymentDetails == nil {
			payment.OnlinePaymentDetails = &models.OnlinePaymentDetails{PaymentID: payment.ID}
		}
		payment.OnlinePaymentDetails.CardholderName = req.OnlinePayment.CardholderName
		payment.OnlinePaymentDetails.CardNumber = req.OnlinePayment.CardNumber
		payment.OnlinePaymentDetails.ExpirationDate = req.OnlinePayment.ExpirationDate
		payment.OnlinePaymentDetails.CVC = req.OnlinePayment.CVC

		// new card details mean the earlier authorization no longer applies
		transactionID, approved := s.authorizer.Authorize(payment.Amount)
		payment.OnlinePaymentDetails.TransactionID = transactionID
		payment.OnlinePaymentDetails.PaymentSuccessful = approved
		if !approved {
			payment.AdminComments = "Online payment authorization failed. Please verify card details."
		}
	}

	if err := s.paymentRepo.Save(payment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to update payment", http.StatusInternalServerError)
	}
	return s.toResponse(payment), nil
}

func (s *paymentService) DeletePayment(id string) error {
	unlock := s.lock(id)
	defer unlock()

	payment, err := s.findPayment(id)
	if err != nil {
		return err
	}
	if !s.canEdit(payment) {
		return apperrors.ErrPaymentNotEditable
	}

	if err := s.paymentRepo.Delete(payment.ID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to delete payment", http.StatusInternalServerError)
	}
	return nil
}

func (s *paymentService) UploadBankSlip(ctx context.Context, id, originalFilename, contentType string, file io.Reader) (*dto.PaymentResponse, error) {
	unlock := s.lock(id)
	defer unlock()

	payment, err := s.findPayment(id)
	if err != nil {
		return nil, err
	}
	if payment.PaymentMethod != models.PaymentMethodBankSlip {
		return nil, apperrors.ErrNotBankSlipPayment
	}
	if !s.canEdit(payment) {
		return nil, apperrors.ErrPaymentNotEditable
	}

	filename := fmt.Sprintf("%s_%d_%s", payment.ID, s.now().UnixMilli(), originalFilename)
	if err := s.store.Save(ctx, filename, file, contentType); err != nil {
		return nil, apperrors.IOError(err, "Failed to store bank slip image")
	}

	if payment.BankSlipDetails == nil {
		payment.BankSlipDetails = &models.BankSlipDetails{PaymentID: payment.ID}
	}
	payment.BankSlipDetails.BankSlipImagePath = filename

	if err := s.paymentRepo.Save(payment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to update payment", http.StatusInternalServerError)
	}
	return s.toResponse(payment), nil
}

func (s *paymentService) GetPaymentHistory(userID string) ([]dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load payment history", http.StatusInternalServerError)
	}
	return s.toResponses(payments), nil
}

func (s *paymentService) GetPendingPayments(userID string) ([]dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load pending payments", http.StatusInternalServerError)
	}
	pending := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == models.PaymentStatusPending {
			pending = append(pending, p)
		}
	}
	return s.toResponses(pending), nil
}

func (s *paymentService) GetUserPoliciesWithPayments(userID string) ([]dto.PolicyWithPaymentsResponse, error) {
	policies, err := s.policyRepo.FindByHolder(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "policy", "Failed to load policies", http.StatusInternalServerError)
	}

	out := make([]dto.PolicyWithPaymentsResponse, 0, len(policies))
	for _, policy := range policies {
		payments, err := s.paymentRepo.FindByPolicyID(policy.ID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load policy payments", http.StatusInternalServerError)
		}

		// newest submission per month wins; repository returns newest first
		byMonth := make(map[string]*models.Payment, len(paymentMonths))
		for i := range payments {
			p := &payments[i]
			if p.UserID != userID {
				continue
			}
			if _, seen := byMonth[p.PaymentMonth]; !seen {
				byMonth[p.PaymentMonth] = p
			}
		}

		months := make([]dto.MonthPaymentStatus, 0, len(paymentMonths))
		for _, month := range paymentMonths {
			entry := dto.MonthPaymentStatus{Month: month}
			if p, ok := byMonth[month]; ok {
				entry.Paid = p.Status == models.PaymentStatusApproved
				entry.Payment = s.toResponse(p)
			}
			months = append(months, entry)
		}

		out = append(out, dto.PolicyWithPaymentsResponse{
			PolicyID:      policy.ID,
			PolicyName:    policy.Name,
			VehicleType:   policy.VehicleType,
			PremiumAmount: policy.PremiumAmount,
			Status:        string(policy.Status),
			Months:        months,
		})
	}
	return out, nil
}

// GetBankDetails returns the deposit account shown to bank-slip payers.
func (s *paymentService) GetBankDetails() *dto.BankDetailsResponse {
	return &dto.BankDetailsResponse{
		BankName:      "Commercial Bank of Ceylon PLC",
		Branch:        "Colombo Main Branch",
		AccountName:   "Insurance LK (Pvt) Ltd",
		AccountNumber: "8001234567",
		SwiftCode:     "CCEYLKLX",
		Reference:     "Use your policy number as the deposit reference",
	}
}

func (s *paymentService) GetAllPayments() ([]dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load payments", http.StatusInternalServerError)
	}
	return s.toResponses(payments), nil
}

func (s *paymentService) GetPaymentsByStatus(status string) ([]dto.PaymentResponse, error) {
	paymentStatus := models.PaymentStatus(strings.ToUpper(status))
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, apperrors.ErrInvalidStatus("payment", fmt.Sprintf("Unknown payment status: %s", status))
	}
	payments, err := s.paymentRepo.FindByStatus(paymentStatus)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load payments", http.StatusInternalServerError)
	}
	return s.toResponses(payments), nil
}

func (s *paymentService) SearchPayments(criteria repositories.PaymentCriteria) ([]dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.Search(criteria)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Payment search failed", http.StatusInternalServerError)
	}
	return s.toResponses(payments), nil
}

func (s *paymentService) GetStatistics() (*dto.PaymentStatisticsResponse, error) {
	payments, err := s.paymentRepo.FindAll()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load payments", http.StatusInternalServerError)
	}

	stats := &dto.PaymentStatisticsResponse{Total: int64(len(payments))}
	for _, p := range payments {
		stats.TotalAmount += p.Amount
		switch p.Status {
		case models.PaymentStatusPending:
			stats.Pending++
		case models.PaymentStatusApproved:
			stats.Approved++
			stats.ApprovedAmount += p.Amount
		case models.PaymentStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// ApprovePayment settles the payment as APPROVED regardless of its current
// status, so an admin can reverse an earlier rejection.
func (s *paymentService) ApprovePayment(id, adminComments string) (*dto.PaymentResponse, error) {
	unlock := s.lock(id)
	defer unlock()

	payment, err := s.findPayment(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payment.Status = models.PaymentStatusApproved
	payment.ApprovedDate = &now
	if adminComments != "" {
		payment.AdminComments = adminComments
	}

	if err := s.paymentRepo.Save(payment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to approve payment", http.StatusInternalServerError)
	}
	return s.toResponse(payment), nil
}

func (s *paymentService) RejectPayment(id, adminComments string) (*dto.PaymentResponse, error) {
	if strings.TrimSpace(adminComments) == "" {
		return nil, apperrors.ErrRejectionCommentRequired
	}

	unlock := s.lock(id)
	defer unlock()

	payment, err := s.findPayment(id)
	if err != nil {
		return nil, err
	}

	payment.Status = models.PaymentStatusRejected
	payment.AdminComments = adminComments

	if err := s.paymentRepo.Save(payment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to reject payment", http.StatusInternalServerError)
	}
	return s.toResponse(payment), nil
}

func (s *paymentService) BulkApprove(ids []string, adminComments string) (*dto.BulkApproveResponse, error) {
	result := &dto.BulkApproveResponse{FailedIDs: []string{}}
	for _, id := range ids {
		if _, err := s.ApprovePayment(id, adminComments); err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.ApprovedCount++
	}
	return result, nil
}

// findPayment loads a payment and lazily backfills the edit-window expiry
// for rows submitted before the expiry column existed.
func (s *paymentService) findPayment(id string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, s.paymentNotFound(id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to load payment", http.StatusInternalServerError)
	}

	if payment.Status == models.PaymentStatusPending && payment.ExpiryTime == nil && payment.SubmittedDate != nil {
		expiry := payment.SubmittedDate.Add(EditWindow)
		payment.ExpiryTime = &expiry
		if err := s.paymentRepo.Save(payment); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to backfill payment expiry", http.StatusInternalServerError)
		}
	}
	return payment, nil
}

// paymentNotFound decorates the 404 with the ids that do exist, which makes
// stale-id bugs in clients visible straight from the error payload.
func (s *paymentService) paymentNotFound(id string) *apperrors.AppError {
	appErr := apperrors.ErrPaymentNotFound(id)
	if ids, err := s.paymentRepo.ListIDs(); err == nil {
		appErr = appErr.WithDetails(map[string]interface{}{"availableIds": ids})
	}
	return appErr
}

func (s *paymentService) canEdit(p *models.Payment) bool {
	if p.Status != models.PaymentStatusPending || p.ExpiryTime == nil {
		return false
	}
	return s.now().Before(*p.ExpiryTime)
}

func (s *paymentService) isExpired(p *models.Payment) bool {
	if p.Status != models.PaymentStatusPending || p.ExpiryTime == nil {
		return false
	}
	return !s.now().Before(*p.ExpiryTime)
}

// timeRemaining renders the rest of the edit window as HH:MM:SS,
// "Expired" once the window has closed, and "N/A" for settled payments.
func (s *paymentService) timeRemaining(p *models.Payment) string {
	if p.Status != models.PaymentStatusPending || p.ExpiryTime == nil {
		return "N/A"
	}
	remaining := p.ExpiryTime.Sub(s.now())
	if remaining <= 0 {
		return "Expired"
	}
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	seconds := int(remaining.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func (s *paymentService) toResponse(p *models.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:            p.ID,
		PolicyID:      p.PolicyID,
		UserID:        p.UserID,
		UserName:      p.UserName,
		UserEmail:     p.UserEmail,
		PaymentMonth:  p.PaymentMonth,
		Amount:        p.Amount,
		PaymentMethod: string(p.PaymentMethod),
		Status:        string(p.Status),
		SubmittedDate: p.SubmittedDate,
		ExpiryTime:    p.ExpiryTime,
		ApprovedDate:  p.ApprovedDate,
		AdminComments: p.AdminComments,
		CanEdit:       s.canEdit(p),
		TimeRemaining: s.timeRemaining(p),
		CanApprove:    p.Status == models.PaymentStatusPending,
		CanReject:     p.Status == models.PaymentStatusPending,
		IsExpired:     s.isExpired(p),
		CreatedAt:     p.CreatedAt,
	}
	if p.Policy != nil {
		resp.PolicyName = p.Policy.Name
	}
	if p.BankSlipDetails != nil {
		resp.BankSlip = &dto.BankSlipResponse{
			BankName:          p.BankSlipDetails.BankName,
			Branch:            p.BankSlipDetails.Branch,
			DepositDate:       p.BankSlipDetails.DepositDate,
			ReferenceNumber:   p.BankSlipDetails.ReferenceNumber,
			DepositorName:     p.BankSlipDetails.DepositorName,
			BankSlipImagePath: p.BankSlipDetails.BankSlipImagePath,
		}
	}
	if p.OnlinePaymentDetails != nil {
		resp.OnlinePayment = &dto.OnlinePaymentResponse{
			CardholderName:    p.OnlinePaymentDetails.CardholderName,
			MaskedCardNumber:  dto.MaskCardNumber(p.OnlinePaymentDetails.CardNumber),
			TransactionID:     p.OnlinePaymentDetails.TransactionID,
			PaymentSuccessful: p.OnlinePaymentDetails.PaymentSuccessful,
		}
	}
	return resp
}

func (s *paymentService) toResponses(payments []models.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *s.toResponse(&payments[i]))
	}
	return out
}
