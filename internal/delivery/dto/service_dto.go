package dto

import "github.com/shopspring/decimal"

// CreateServiceRequest represents the payload to create a dental service
type CreateServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
}

// UpdateServiceRequest represents the payload to update a dental service
type UpdateServiceRequest struct {
	Name        string           `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string          `json:"description" validate:"omitempty"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty"`
	ImageURL    *string          `json:"image_url" validate:"omitempty"`
}

// ServiceResponse represents a dental service returned to clients
type ServiceResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
}
