package repositories

import (
	"errors"
	"strings"

	"insurancelk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Search criteria for admin payment search; all filters optional, substring
// matching for ids and month.
type PaymentCriteria struct {
	UserID   string `form:"userId"`
	PolicyID string `form:"policyId"`
	Month    string `form:"month"`
	Status   string `form:"status"`
}

type PaymentRepository interface {
	Create(payment *models.Payment) error
	Save(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	FindAll() ([]models.Payment, error)
	FindByUserID(userID string) ([]models.Payment, error)
	FindByPolicyID(policyID string) ([]models.Payment, error)
	FindByStatus(status models.PaymentStatus) ([]models.Payment, error)
	Search(criteria PaymentCriteria) ([]models.Payment, error)
	Delete(id string) error
	// ListIDs returns all payment ids, used by the not-found diagnostic payload.
	ListIDs() ([]string, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

// submittedDesc orders newest submissions first; rows that never recorded a
// submitted timestamp sort last.
const submittedDesc = "submitted_date DESC NULLS LAST"

func (r *PaymentRepositoryImpl) withDetails() *gorm.DB {
	return r.db.Preload("Policy").Preload("BankSlipDetails").Preload("OnlinePaymentDetails")
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) Save(payment *models.Payment) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.withDetails().First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.withDetails().Order(submittedDesc).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) FindByUserID(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.withDetails().Where("user_id = ?", userID).Order(submittedDesc).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) FindByPolicyID(policyID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.withDetails().Where("policy_id = ?", policyID).Order(submittedDesc).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) FindByStatus(status models.PaymentStatus) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.withDetails().Where("status = ?", status).Order(submittedDesc).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) Search(criteria PaymentCriteria) ([]models.Payment, error) {
	query := r.withDetails()

	if criteria.UserID != "" {
		query = query.Where("user_id::text LIKE ?", "%"+criteria.UserID+"%")
	}
	if criteria.PolicyID != "" {
		query = query.Where("policy_id::text LIKE ?", "%"+criteria.PolicyID+"%")
	}
	if criteria.Month != "" {
		query = query.Where("LOWER(payment_month) LIKE ?", "%"+strings.ToLower(criteria.Month)+"%")
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var payments []models.Payment
	err := query.Order(submittedDesc).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) Delete(id string) error {
	result := r.db.Select("BankSlipDetails", "OnlinePaymentDetails").Delete(&models.Payment{BaseModel: models.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) ListIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Payment{}).Order(submittedDesc).Pluck("id", &ids).Error
	return ids, err
}
