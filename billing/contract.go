package billing

import (
	"errors"
	"time"

	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"gorm.io/gorm"
)

var validContractStatus = map[string]bool{
	models.ContractActive:  true,
	models.ContractPending: true,
	models.ContractAlert:   true,
}

type CreateContractInput struct {
	ClientID    uint      `json:"client_id" validate:"required"`
	ServiceID   uint      `json:"service_id" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	NextPayment time.Time `json:"next_payment" validate:"required"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Status      string    `json:"status"`
	InvoiceDays int       `json:"invoice_days" validate:"gte=0"`
}

// CreateContract subscribes a client to a catalog service. When no price
// override is given the service's base price applies.
func CreateContract(db *gorm.DB, in CreateContractInput) (*models.ContractedService, error) {
	if in.Status != "" && !validContractStatus[in.Status] {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: active, pending, alert"}
	}
	if in.InvoiceDays < 0 {
		return nil, &ValidationError{Field: "invoice_days", Reason: "cannot be negative"}
	}

	if err := db.First(&models.Client{}, in.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: in.ClientID}
		}
		return nil, err
	}
	var service models.Service
	if err := db.First(&service, in.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "service", ID: in.ServiceID}
		}
		return nil, err
	}

	price := service.BasePrice
	if in.Price != nil {
		price = *in.Price
	}
	status := in.Status
	if status == "" {
		status = models.ContractActive
	}

	contract := models.ContractedService{
		ClientID:    in.ClientID,
		ServiceID:   in.ServiceID,
		StartDate:   utils.DateOnly(in.StartDate),
		NextPayment: utils.DateOnly(in.NextPayment),
		Price:       utils.Round2(price),
		Status:      status,
		InvoiceDays: in.InvoiceDays,
	}
	if err := db.Create(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

type UpdateContractInput struct {
	ServiceID   *uint      `json:"service_id"`
	StartDate   *time.Time `json:"start_date"`
	NextPayment *time.Time `json:"next_payment"`
	Price       *float64   `json:"price" validate:"omitempty,gt=0"`
	Status      *string    `json:"status"`
	InvoiceDays *int       `json:"invoice_days" validate:"omitempty,gte=0"`
}

// UpdateContract applies a renewal or a manual edit. Moving NextPayment
// starts a new billing cycle, so BillingAlertSent always resets with it.
func UpdateContract(db *gorm.DB, id uint, in UpdateContractInput) (*models.ContractedService, error) {
	var contract models.ContractedService
	if err := db.First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "contracted_service", ID: id}
		}
		return nil, err
	}

	if in.Status != nil && !validContractStatus[*in.Status] {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: active, pending, alert"}
	}
	if in.Price != nil && *in.Price <= 0 {
		return nil, &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if in.InvoiceDays != nil && *in.InvoiceDays < 0 {
		return nil, &ValidationError{Field: "invoice_days", Reason: "cannot be negative"}
	}
	if in.ServiceID != nil && *in.ServiceID != contract.ServiceID {
		if err := db.First(&models.Service{}, *in.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "service", ID: *in.ServiceID}
			}
			return nil, err
		}
	}

	utils.NormalizePtrDTO(&in)
	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if in.StartDate != nil {
		updates["start_date"] = utils.DateOnly(*in.StartDate)
	}
	if in.NextPayment != nil {
		next := utils.DateOnly(*in.NextPayment)
		updates["next_payment"] = next
		if !next.Equal(utils.DateOnly(contract.NextPayment)) {
			// New cycle, alert eligibility starts over.
			updates["billing_alert_sent"] = false
		}
	}

	if err := db.Model(&models.ContractedService{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated models.ContractedService
	if err := db.Preload("Client").Preload("Service").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteContract soft-deletes a cancelled subscription.
func DeleteContract(db *gorm.DB, id uint) error {
	var contract models.ContractedService
	if err := db.First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "contracted_service", ID: id}
		}
		return err
	}
	return db.Delete(&contract).Error
}
