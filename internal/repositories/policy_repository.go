package repositories

import (
	"errors"

	"insurancelk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPolicyNotFound = errors.New("policy not found")

type PolicyRepository interface {
	Create(policy *models.Policy) error
	FindByID(id string) (*models.Policy, error)
	FindAll() ([]models.Policy, error)
	// FindEligible returns policies whose status allows premium payments
	// (APPROVED or ACTIVE).
	FindEligible() ([]models.Policy, error)
	FindByHolder(userID string) ([]models.Policy, error)
	Count() (int64, error)
}

type PolicyRepositoryImpl struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &PolicyRepositoryImpl{db: db}
}

func (r *PolicyRepositoryImpl) Create(policy *models.Policy) error {
	return r.db.Create(policy).Error
}

func (r *PolicyRepositoryImpl) FindByID(id string) (*models.Policy, error) {
	var policy models.Policy
	err := r.db.First(&policy, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}
	return &policy, nil
}

func (r *PolicyRepositoryImpl) FindAll() ([]models.Policy, error) {
	var policies []models.Policy
	err := r.db.Order("created_at ASC").Find(&policies).Error
	return policies, err
}

func (r *PolicyRepositoryImpl) FindEligible() ([]models.Policy, error) {
	var policies []models.Policy
	err := r.db.
		Where("status IN ?", []models.PolicyStatus{models.PolicyStatusApproved, models.PolicyStatusActive}).
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

func (r *PolicyRepositoryImpl) FindByHolder(userID string) ([]models.Policy, error) {
	var policies []models.Policy
	err := r.db.
		Where("holder_user_id = ?", userID).
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

func (r *PolicyRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Policy{}).Count(&count).Error
	return count, err
}
